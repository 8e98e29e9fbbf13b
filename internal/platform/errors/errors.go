package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrNoActiveProfile     = errors.New("no active writing profile")
	ErrSessionPaused       = errors.New("session is paused")
	ErrSessionNotPaused    = errors.New("session is not paused")
	ErrImmutableTemplate   = errors.New("built-in templates cannot be changed")
	ErrInvalidTemplate     = errors.New("invalid template")
	ErrInvalidSettings     = errors.New("invalid settings")
)
