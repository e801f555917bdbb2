package model

import "time"

// Session is a model of the persistency layer. One record exists per live
// command session against a peer's agent.
type Session struct {
	ID            int32
	Namespace     string
	PeerID        string
	AgentAddr     string
	Connected     bool
	LastCommandAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
