package user

import "time"

// Resolver cache configuration
const (
	// DefaultCacheSize is the maximum number of cached resolutions
	DefaultCacheSize = 1000

	// DefaultCacheTTL bounds how long a registration can stay invisible
	// to cached resolutions.
	DefaultCacheTTL = 1 * time.Minute
)

// Error message constants
const (
	ErrMsgUsernameRequired = "username is required"
)
