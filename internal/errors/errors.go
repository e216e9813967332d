package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidCode     = errors.New("invalid confirmation code")
	ErrPendingNotFound = errors.New("pending registration not found")
)

// TooSoonError is returned when a confirmation code resend is requested before the
// minimum resend interval has elapsed since the last code was sent.
type TooSoonError struct {
	RetryAfter time.Duration
}

func (e *TooSoonError) Error() string {
	return fmt.Sprintf("confirmation code already sent, retry in %s", e.RetryAfter.Round(time.Second))
}

// RateLimitError is returned when a key has exhausted its quota for the current window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}
