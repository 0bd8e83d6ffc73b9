package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/domain"
	"github.com/Kalledda/automated-ai-policy-auditor-demo/internal/core/ports/driving"
)

// countingAuditor records the peak number of concurrent Audit calls.
type countingAuditor struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	calls    atomic.Int32
	delay    time.Duration
}

func (a *countingAuditor) Audit(_ context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error) {
	a.mu.Lock()
	a.inFlight++
	if a.inFlight > a.peak {
		a.peak = a.inFlight
	}
	a.mu.Unlock()

	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	a.calls.Add(1)

	a.mu.Lock()
	a.inFlight--
	a.mu.Unlock()

	if strings.Contains(content, "boom") {
		return nil, fmt.Errorf("%w: judge down", domain.ErrExternalService)
	}
	return &domain.AuditVerdict{Outcome: domain.OutcomePass, Rationale: "🟢 PASS " + content, Modality: modality}, nil
}

func (a *countingAuditor) AuditText(ctx context.Context, content string, modality domain.Modality) (*domain.AuditVerdict, error) {
	return a.Audit(ctx, content, modality)
}

func (a *countingAuditor) AuditDocument(_ context.Context, _ []byte, _ string) (*driving.DocumentAudit, error) {
	return nil, domain.ErrInvalidInput
}

func (a *countingAuditor) AuditImage(_ context.Context, _ []byte) (*driving.ImageAudit, error) {
	return nil, domain.ErrInvalidInput
}

func TestAuditAll_ResultsKeepInputOrder(t *testing.T) {
	auditor := &countingAuditor{}
	exec := NewAuditExecutor(auditor, 3)

	contents := []string{"a", "b", "c", "d", "e"}
	results := exec.AuditAll(context.Background(), contents, domain.ModalityPrompt)

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		require.NoError(t, r.Err)
		assert.Contains(t, r.Verdict.Rationale, contents[i])
	}
	assert.Equal(t, int32(5), auditor.calls.Load())
}

func TestAuditAll_BoundsConcurrency(t *testing.T) {
	auditor := &countingAuditor{delay: 20 * time.Millisecond}
	exec := NewAuditExecutor(auditor, 2)

	contents := make([]string, 10)
	for i := range contents {
		contents[i] = fmt.Sprintf("content %d", i)
	}
	exec.AuditAll(context.Background(), contents, domain.ModalityPrompt)

	assert.LessOrEqual(t, auditor.peak, 2, "no more than 2 audits may be in flight")
}

func TestAuditAll_OneFailureDoesNotStopBatch(t *testing.T) {
	auditor := &countingAuditor{}
	exec := NewAuditExecutor(auditor, 2)

	results := exec.AuditAll(context.Background(), []string{"fine", "boom", "also fine"}, domain.ModalityPrompt)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrExternalService)
	assert.NoError(t, results[2].Err)
	assert.NotNil(t, results[2].Verdict)
}

func TestAuditAll_CancelledContext(t *testing.T) {
	auditor := &countingAuditor{delay: 50 * time.Millisecond}
	exec := NewAuditExecutor(auditor, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := exec.AuditAll(ctx, []string{"a", "b", "c"}, domain.ModalityPrompt)

	var cancelled int
	for _, r := range results {
		if r.Err != nil {
			cancelled++
		}
	}
	assert.Greater(t, cancelled, 0, "undispatched items must report the context error")
}

func TestNewAuditExecutor_ConcurrencyFloor(t *testing.T) {
	exec := NewAuditExecutor(&countingAuditor{}, 0)
	assert.Equal(t, DefaultConcurrency, exec.concurrency)
}
