package model

import "time"

// Peer is a model of the persistency layer. It describes one remote PC
// running the control agent: where to reach its TCP command port and which
// MAC address wake-on-LAN packets are addressed to.
type Peer struct {
	ID         int32
	Namespace  string
	PeerID     string
	AgentAddr  string
	MACAddress string

	CreatedAt time.Time
	UpdatedAt time.Time
}
