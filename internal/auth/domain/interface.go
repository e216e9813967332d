package domain

import (
	"context"
	"time"
)

// UserRepository persists confirmed users. Find methods return (nil, nil) when no row
// matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhoneNumber(ctx context.Context, phone string) (*User, error)
	ExistsByUniqueFields(ctx context.Context, username, email, phone string) (bool, error)
	Create(ctx context.Context, user *User) error
	UpdateRefreshToken(ctx context.Context, userID int64, token *RefreshToken) error
	// ClearRefreshToken drops the stored refresh token matching tokenValue and reports
	// how many users were affected.
	ClearRefreshToken(ctx context.Context, tokenValue string) (int64, error)
}

// PendingRegistrationRepository persists unconfirmed registrations keyed by email.
type PendingRegistrationRepository interface {
	// Upsert stores the pending registration, replacing code, expiry and last-sent on
	// an existing row for the same email instead of creating a duplicate.
	Upsert(ctx context.Context, pending *PendingRegistration) error
	FindByEmail(ctx context.Context, email string) (*PendingRegistration, error)
	FindByCode(ctx context.Context, code string) (*PendingRegistration, error)
	UpdateCode(ctx context.Context, id int64, code string, expiresAt, sentAt time.Time) error
	Delete(ctx context.Context, id int64) error
	// DeleteExpired removes at most limit rows whose expiry lies before the given
	// instant and reports how many were removed.
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int64, error)
}

// CodeSender delivers a confirmation code to its destination out-of-band.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}
