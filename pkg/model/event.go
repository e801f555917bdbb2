package model

import "time"

// Event is a model of the persistency layer. Events record outbound agent
// commands and connection status changes for auditing.
type Event struct {
	ID        int32
	Namespace string
	PeerID    string
	Topic     string
	Timestamp time.Time
	Details   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
