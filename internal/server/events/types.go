// Package events provides a unified event system for real-time
// inventory updates.
//
// It implements a broker pattern that connects the engine's hooks to
// multiple transport mechanisms (WebSocket, SSE) through a common event
// pipeline, so each transport does not re-implement fan-out.
package events

import "time"

// EventType represents the type of inventory event.
type EventType string

// Event types for inventory changes.
const (
	// ViewsUpdated fires after every publication of the reconciled views.
	ViewsUpdated EventType = "views.updated"

	// CloneSubmitted fires when a clone submission is accepted.
	CloneSubmitted EventType = "clone.submitted"

	// CloneResolved fires when the server snapshot confirms a clone.
	CloneResolved EventType = "clone.resolved"

	// CloneFailed fires when a clone task ends in failure.
	CloneFailed EventType = "clone.failed"

	// ClientConnected fires when a transport client connects.
	ClientConnected EventType = "client.connected"
)

// Event represents an inventory event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
