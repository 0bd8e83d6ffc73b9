package driving

import "context"

// Indexer builds the persisted policy index. Run offline, once or on
// policy change; the serving process only ever loads the result.
type Indexer interface {
	// BuildIndex reads the policy document, chunks it, embeds every
	// chunk, and persists the vector index. Returns the number of
	// chunks indexed.
	BuildIndex(ctx context.Context, policyPath string) (int, error)
}
