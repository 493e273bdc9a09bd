// Package store holds the normalized domain state containers. Each store
// owns one slice of state behind a mutex, exposes asynchronous operations
// that call the remote resource layer, and reduces results into state.
// Reads go through Snapshot, which deep-copies so callers never alias
// internal state.
package store

import (
	"sprout/internal/errors"

	"github.com/go-playground/validator/v10"
)

// validate checks operation payloads before any network call is issued.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Status is the lifecycle of the most recent operation on a store.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// userMessenger is implemented by transport errors that carry a message safe
// to surface to the user.
type userMessenger interface {
	UserMessage() string
}

// failureMessage resolves the user-facing error string for an operation:
// the server's own message when the error carries one, the operation's fixed
// fallback copy otherwise.
func failureMessage(err error, fallback string) string {
	var messenger userMessenger
	if errors.As(err, &messenger) && messenger.UserMessage() != "" {
		return messenger.UserMessage()
	}

	return fallback
}
