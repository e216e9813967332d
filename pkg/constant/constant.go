package constant

const (
	// DefaultRoleName is assigned to every user created through registration.
	DefaultRoleName = "USER"

	// AnonymousRateKey is the rate-limit key for unauthenticated requests on
	// identity-scoped limits.
	AnonymousRateKey = "ANONYMOUS"

	BearerPrefix = "Bearer "

	NoUpdatedRecords = 0
)
