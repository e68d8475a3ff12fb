// Package events publishes entity lifecycle events for downstream consumers.
package events

import (
	"context"
	"time"
)

type Action string

const (
	Created Action = "created"
	Deleted Action = "deleted"
)

type EntityEvent struct {
	Kind      string    `json:"kind"`
	Action    Action    `json:"action"`
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// RoutingKey is "<kind>.<action>", e.g. "customer.created".
func (e EntityEvent) RoutingKey() string {
	return e.Kind + "." + string(e.Action)
}

type Publisher interface {
	Publish(ctx context.Context, e EntityEvent) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, EntityEvent) error { return nil }
