// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCompletedQueue is the durable queue carrying OrderCompletedEvent.
const OrderCompletedQueue = "order.completed"

// OrderCompletedEvent is published after a checkout commits.  It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.  Money fields are decimal
// strings with two places.
type OrderCompletedEvent struct {
	OrderID      uint64      `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	UserID       uint64      `json:"user_id"`
	Items        []OrderLine `json:"items"`
	Subtotal     string      `json:"subtotal"`
	Tax          string      `json:"tax"`
	PointsUsed   int64       `json:"points_used"`
	Total        string      `json:"total"`
	PointsEarned int64       `json:"points_earned"`
	CompletedAt  string      `json:"completed_at"`
}

// OrderLine is one purchased publication.
type OrderLine struct {
	PublicationID uint64 `json:"publication_id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Price         string `json:"price"`
}
