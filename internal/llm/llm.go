// Package llm defines the prompt-in, text-out contract of the model backend.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Completer sends a prompt to a text-generation backend and returns its full
// textual response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrInvocation matches every failure of a model backend call.
var ErrInvocation = errors.New("model invocation failed")

// InvocationError wraps a backend failure with the provider that produced it.
type InvocationError struct {
	Provider string
	Model    string
	Cause    error
}

func (e *InvocationError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s (%s): %v", e.Provider, e.Model, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrInvocation) match any InvocationError.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
