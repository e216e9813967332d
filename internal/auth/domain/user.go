package domain

import "time"

// User is a confirmed, authenticatable identity. Username, email and phone number are
// all unique and each one works as a login identifier.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	GroupNumber  string
	University   string
	Roles        []string
	RefreshToken *RefreshToken
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is the single live refresh credential owned by a user. Issuing a new one
// overwrites and implicitly invalidates the previous value.
type RefreshToken struct {
	Token     string
	ExpiresAt time.Time
}

// PendingRegistration is an unconfirmed registration awaiting code validation. At most
// one record exists per email; re-initiating overwrites the code, expiry and last-sent
// instants in place.
type PendingRegistration struct {
	ID               int64
	Username         string
	FullName         string
	Email            string
	PhoneNumber      string
	Password         string // bcrypt hash, never the raw password
	GroupNumber      string
	University       string
	ConfirmationCode string
	ExpirationDate   time.Time
	LastSentTime     time.Time
}
