package messaging

const (
	invalidationExchange     = "storysite_cache_invalidation"
	invalidationExchangeType = "fanout"
)
