package errors

import "errors"

var (
	ErrMissingSession     = errors.New("TELEGRAM_SESSION environment variable is required")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrNoPublicPreview    = errors.New("channel has no public username, web preview unavailable")
	ErrSubscriptionClosed = errors.New("chat source subscription ended unexpectedly")
	ErrSourceUnauthorized = errors.New("chat source rejected the session credential")
	ErrUnexpectedStatus   = errors.New("unexpected response status")
)
