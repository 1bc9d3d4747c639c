package llm

import (
	"context"
	"errors"
)

// ErrUnavailable marks a completer with no credential configured. Pipelines
// check Available once per stage and fall back to heuristics; this error
// exists so a call made anyway still fails fast and distinguishably.
var ErrUnavailable = errors.New("llm: provider unavailable")

// Request is one stateless completion call. There is no streaming and no
// multi-turn state; every call is independent.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32 // 0..1
}

// Completer is the capability boundary to the intelligence provider:
// "given a prompt, return a text completion". Implementations do not retry;
// a failed call surfaces as an error and the caller decides what degrades.
type Completer interface {
	// Available reports whether the provider has a credential configured.
	Available() bool
	Complete(ctx context.Context, req Request) (string, error)
}

// Unavailable is a Completer with no backing provider. Every call fails with
// ErrUnavailable, so a deployment without credentials runs fully on
// heuristics.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }

func (Unavailable) Complete(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}
