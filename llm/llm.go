package llm

import "context"

// ChatOptions tune a single completion call.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
	HasTemp     bool
}

// Client is the boundary every agent talks through. Tests swap in a fake.
type Client interface {
	// Chat sends a text-only prompt and returns the raw completion text.
	Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error)
	// ChatVision sends a prompt together with base64-encoded JPEG images.
	ChatVision(ctx context.Context, prompt string, imagesBase64 []string, opts ChatOptions) (string, error)
	// EditImage runs an image-to-image edit and returns the result as base64.
	EditImage(ctx context.Context, imageJPEG []byte, prompt string) (string, error)
	// Model reports the chat model in use, for logs.
	Model() string
}
