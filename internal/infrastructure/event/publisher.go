package event

import (
	"context"
)

// Publisher emits domain events to the billing events topic. Publication is
// best-effort and at-most-once: the boolean result tells the caller whether
// the broker acknowledged the event, and callers treat false as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, eventType, resourceType string, payload any) bool
}

// PartitionKeyer is implemented by payloads that carry their own routing
// key. Payloads without it are published with an empty key.
type PartitionKeyer interface {
	PartitionKey() string
}

// NopPublisher drops every event. It is used when event publication is
// disabled in configuration.
type NopPublisher struct{}

// Publish discards the event and reports failure
func (NopPublisher) Publish(ctx context.Context, eventType, resourceType string, payload any) bool {
	return false
}
