package usecase

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal error")
	ErrCarNotFound     = errors.New("car not found")
	ErrNoCarsAvailable = errors.New("no cars available")
	ErrChatUnavailable = errors.New("chat unavailable")
)
