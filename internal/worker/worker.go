// Package worker runs audits with bounded concurrency. Every audit
// makes blocking calls to external services (embedder, judge, vision),
// so the executor caps how many are in flight rather than spawning a
// goroutine per request.
package worker

import (
	"context"
	"sync"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
)

// DefaultConcurrency is the default number of concurrent audits.
const DefaultConcurrency = 4

// Result is the outcome of one audit in a batch, at its input index.
type Result struct {
	// Index is the position of the content in the submitted batch.
	Index int

	// Verdict is the audit verdict, nil when Err is set.
	Verdict *domain.AuditVerdict

	// Err is the per-item failure, nil on success. One item failing
	// does not stop the rest of the batch.
	Err error
}

// AuditExecutor fans a batch of contents out to the auditor with a
// bounded number of workers.
type AuditExecutor struct {
	auditor     driving.Auditor
	concurrency int
}

// NewAuditExecutor creates an executor over the given auditor.
// Concurrency values below 1 fall back to DefaultConcurrency.
func NewAuditExecutor(auditor driving.Auditor, concurrency int) *AuditExecutor {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &AuditExecutor{auditor: auditor, concurrency: concurrency}
}

// AuditAll audits every content under the given modality and returns
// one result per input, in input order. Cancelling the context stops
// dispatching; already-dispatched audits finish and items never
// dispatched report the context error.
func (e *AuditExecutor) AuditAll(ctx context.Context, contents []string, modality domain.Modality) []Result {
	results := make([]Result, len(contents))
	for i := range results {
		results[i].Index = i
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := e.concurrency
	if workers > len(contents) {
		workers = len(contents)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				verdict, err := e.auditor.Audit(ctx, contents[i], modality)
				results[i].Verdict = verdict
				results[i].Err = err
			}
		}()
	}

dispatch:
	for i := range contents {
		select {
		case jobs <- i:
		case <-ctx.Done():
			for j := i; j < len(contents); j++ {
				if results[j].Verdict == nil && results[j].Err == nil {
					results[j].Err = ctx.Err()
				}
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
