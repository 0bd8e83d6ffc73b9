package driven

import "context"

// VisionService is the vision-description boundary: it reduces an image
// to a factual text description that the shared audit path can judge.
type VisionService interface {
	// Describe returns the model's free-text description of the image.
	// The instruction wording is fixed by the adapter and asks for an
	// objective, non-sanitised account of depicted objects and actions.
	Describe(ctx context.Context, imageBytes []byte) (string, error)

	// ModelName returns the name of the vision model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
