package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// ID parsing error messages
	ErrMsgInvalidOfferID    = "Invalid offer ID"
	ErrMsgInvalidListingID  = "Invalid listing ID"
	ErrMsgInvalidInstanceID = "Invalid instance ID"

	// Operation error messages
	ErrMsgRollFailed          = "Failed to roll rewards"
	ErrMsgSendGiftFailed      = "Failed to send gift"
	ErrMsgProposeTradeFailed  = "Failed to propose trade"
	ErrMsgRespondTradeFailed  = "Failed to respond to trade"
	ErrMsgCreateListingFailed = "Failed to create listing"
	ErrMsgClaimListingFailed  = "Failed to claim listing"
	ErrMsgGetListingsFailed   = "Failed to retrieve listings"
	ErrMsgGetOffersFailed     = "Failed to retrieve offers"
	ErrMsgRegisterUserFailed  = "Failed to register user"
	ErrMsgGetInventoryFailed  = "Failed to get inventory"
)

// Success messages for API responses
const (
	MsgRewardsSeenSuccess = "Rewards marked as seen"
)
