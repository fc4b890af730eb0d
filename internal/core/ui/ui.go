// Package ui defines the presentation collaborators that controllers call
// into: alerts, confirmations and form submission. The CLI and the TUI each
// provide their own implementations.
package ui

import (
	"context"
)

// Level is the severity of an alert.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// AlertPresenter shows a short message to the user. key is a message
// catalog key; implementations translate it.
type AlertPresenter interface {
	Alert(key string, level Level)
}

// AlertFunc adapts a function to AlertPresenter.
type AlertFunc func(key string, level Level)

// Alert implements AlertPresenter.
func (f AlertFunc) Alert(key string, level Level) { f(key, level) }

// ConfirmationPrompt asks the user a yes/no question. message and title
// are already translated.
type ConfirmationPrompt interface {
	Confirm(ctx context.Context, message, title string) (bool, error)
}

// ConfirmFunc adapts a function to ConfirmationPrompt.
type ConfirmFunc func(ctx context.Context, message, title string) (bool, error)

// Confirm implements ConfirmationPrompt.
func (f ConfirmFunc) Confirm(ctx context.Context, message, title string) (bool, error) {
	return f(ctx, message, title)
}

// Answer is a ConfirmationPrompt with a fixed answer, for callers that have
// already asked the user (a TUI modal, a --yes flag).
type Answer bool

// Confirm implements ConfirmationPrompt.
func (a Answer) Confirm(context.Context, string, string) (bool, error) {
	return bool(a), nil
}

// FormFile is a file part of a Form.
type FormFile struct {
	Field string
	Path  string
}

// Form is a multipart form submission to an API path.
type Form struct {
	Action string
	Fields map[string]string
	Files  []FormFile
}

// FormSubmitter posts a form and returns the raw response body.
type FormSubmitter interface {
	Submit(ctx context.Context, form Form) ([]byte, error)
}

// SubmitFunc adapts a function to FormSubmitter.
type SubmitFunc func(ctx context.Context, form Form) ([]byte, error)

// Submit implements FormSubmitter.
func (f SubmitFunc) Submit(ctx context.Context, form Form) ([]byte, error) {
	return f(ctx, form)
}
