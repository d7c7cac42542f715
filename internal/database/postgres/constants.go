package postgres

// PostgreSQL error codes
const (
	// PgErrCodeUniqueViolation is raised when an insert collides with a
	// unique index, e.g. a second active listing for the same instance.
	PgErrCodeUniqueViolation = "23505"
)

// Query limits
const (
	// DefaultListingFeedLimit bounds the public listing feed when the caller
	// passes a non-positive limit.
	DefaultListingFeedLimit = 50

	// DefaultOfferFeedLimit bounds the per-user offer inbox.
	DefaultOfferFeedLimit = 50
)
