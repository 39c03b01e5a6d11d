// Package llmtest provides a scripted llm.Invoker for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/content-generator/internal/llm"
)

// Handler produces the raw reply text for a call.
type Handler func(call llm.Call) (string, error)

// Stub is an llm.Invoker that answers every call through a Handler.
// Replies to JSON calls go through llm.ParseJSON like the production gateway.
type Stub struct {
	Handler Handler

	mu    sync.Mutex
	calls []llm.Call
}

// NewStub returns a Stub answering with h.
func NewStub(h Handler) *Stub {
	return &Stub{Handler: h}
}

// Reply returns a Stub that always answers with text.
func Reply(text string) *Stub {
	return NewStub(func(llm.Call) (string, error) { return text, nil })
}

// Fail returns a Stub whose calls all fail with err.
func Fail(err error) *Stub {
	return NewStub(func(llm.Call) (string, error) { return "", err })
}

// Invoke implements llm.Invoker.
func (s *Stub) Invoke(ctx context.Context, call llm.Call) (*llm.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := s.Handler(call)
	if err != nil {
		return nil, &llm.APICallError{Provider: "stub", Message: "completion failed", Cause: err}
	}

	resp := &llm.Response{Text: text, Model: "stub"}
	if call.ExpectJSON {
		raw, err := llm.ParseJSON(text)
		if err != nil {
			return nil, err
		}
		resp.JSON = raw
	}
	return resp, nil
}

// Calls returns a copy of the calls received so far.
func (s *Stub) Calls() []llm.Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Call, len(s.calls))
	copy(out, s.calls)
	return out
}
