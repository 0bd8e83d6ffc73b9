package driven

import "context"

// JudgeService is the judging-model boundary: a single-turn completion
// with system instructions and user content. No conversation state is
// retained between calls.
type JudgeService interface {
	// Complete sends the system instructions and user content to the
	// judge model and returns its free-text response.
	Complete(ctx context.Context, systemInstructions, userContent string) (string, error)

	// ModelName returns the name of the judge model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
