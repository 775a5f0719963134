// Package events describes catalog change notifications.
package events

import (
	"context"
	"time"
)

// Actions carried by a CatalogEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is emitted after a catalog row was created, updated or deleted.
type CatalogEvent struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ID         int64     `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New stamps an event with the current time.
func New(resource, action string, id int64) CatalogEvent {
	return CatalogEvent{Resource: resource, Action: action, ID: id, OccurredAt: time.Now().UTC()}
}

// Publisher delivers catalog events to interested consumers.
type Publisher interface {
	PublishCatalogEvent(ctx context.Context, event CatalogEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCatalogEvent(context.Context, CatalogEvent) error { return nil }
