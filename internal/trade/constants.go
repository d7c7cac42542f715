package trade

// DefaultOfferFeedLimit caps how many offers a single inbox query returns.
const DefaultOfferFeedLimit = 50
