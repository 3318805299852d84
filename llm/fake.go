package llm

import (
	"context"
	"fmt"
	"sync"
)

// Fake is a scripted Client for tests. Unset hooks fail loudly so a test
// never silently exercises an agent it did not mean to.
type Fake struct {
	ChatFunc       func(ctx context.Context, prompt string, opts ChatOptions) (string, error)
	ChatVisionFunc func(ctx context.Context, prompt string, imagesBase64 []string, opts ChatOptions) (string, error)
	EditImageFunc  func(ctx context.Context, imageJPEG []byte, prompt string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (f *Fake) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// Calls lists the methods invoked, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) CallCount(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *Fake) Chat(ctx context.Context, prompt string, opts ChatOptions) (string, error) {
	f.record("chat")
	if f.ChatFunc == nil {
		return "", fmt.Errorf("fake llm: Chat not scripted")
	}
	return f.ChatFunc(ctx, prompt, opts)
}

func (f *Fake) ChatVision(ctx context.Context, prompt string, imagesBase64 []string, opts ChatOptions) (string, error) {
	f.record("chat_vision")
	if f.ChatVisionFunc == nil {
		return "", fmt.Errorf("fake llm: ChatVision not scripted")
	}
	return f.ChatVisionFunc(ctx, prompt, imagesBase64, opts)
}

func (f *Fake) EditImage(ctx context.Context, imageJPEG []byte, prompt string) (string, error) {
	f.record("edit_image")
	if f.EditImageFunc == nil {
		return "", fmt.Errorf("fake llm: EditImage not scripted")
	}
	return f.EditImageFunc(ctx, imageJPEG, prompt)
}

func (f *Fake) Model() string { return "fake" }
