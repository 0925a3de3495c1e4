// Package transcription wraps the speech-to-text engine boundary.
package transcription

import (
	"context"
	"errors"
	"fmt"
)

// ErrModelUnavailable marks a failed engine construction. The failure is
// cached by the Manager, so every later caller observes the same condition.
var ErrModelUnavailable = errors.New("transcription engine unavailable")

// Transcriber converts one audio file into transcript text. Implementations
// make a single attempt per call and never retry on their own.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// Error reports a transcription failure for a single file, carrying the
// engine's original message.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcription failed for %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Mock returns a canned transcript without touching any engine.
// Enabled via USE_MOCK_TRANSCRIBE=true for offline demo runs.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (Mock) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	return "Hello this is your bank please share the OTP to verify your account", nil
}
