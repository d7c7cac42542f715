package market

// DefaultListingFeedLimit caps how many listings the public feed returns.
const DefaultListingFeedLimit = 50
