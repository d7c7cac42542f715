package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgAmbiguousRecipient = "recipient is ambiguous"

	// Catalog errors
	ErrMsgRewardNotFound     = "reward definition not found"
	ErrMsgCatalogUnavailable = "reward catalog unavailable"

	// Inventory errors
	ErrMsgInstanceNotFound = "reward instance not found"
	ErrMsgNotOwned         = "instance not owned by user"

	// Exchange errors
	ErrMsgOfferNotFound   = "trade offer not found"
	ErrMsgListingNotFound = "listing not found"
	ErrMsgInvalidTarget   = "invalid target"
	ErrMsgStateConflict   = "state conflict"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// ErrAmbiguousRecipient signals that an identifier matched more than one user.
	// It is a flavor of ErrInvalidTarget and must never be resolved silently.
	ErrAmbiguousRecipient = errors.New(ErrMsgAmbiguousRecipient)

	// Catalog errors
	ErrRewardNotFound     = errors.New(ErrMsgRewardNotFound)
	ErrCatalogUnavailable = errors.New(ErrMsgCatalogUnavailable)

	// Inventory errors
	ErrInstanceNotFound = errors.New(ErrMsgInstanceNotFound)
	ErrNotOwned         = errors.New(ErrMsgNotOwned)

	// Exchange errors
	ErrOfferNotFound   = errors.New(ErrMsgOfferNotFound)
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrInvalidTarget   = errors.New(ErrMsgInvalidTarget)

	// ErrStateConflict is returned when an operation targets a record that is
	// no longer in the expected state: resolving a non-pending offer, claiming
	// a non-active listing, or losing a concurrent race for either transition.
	// Callers may retry against a different record; retrying the same one is
	// guaranteed to fail again.
	ErrStateConflict = errors.New(ErrMsgStateConflict)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
