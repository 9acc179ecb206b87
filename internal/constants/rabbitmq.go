package constants

// Routing keys
const (
	RoutingKeyOrderStatusChanged = "orders.status.changed"
	RoutingKeySearchPerformed    = "analytics.search.performed"
)

const (
	DefaultEventsExchange = "marketplace_events"
	EventsExchangeType    = "topic"
)
