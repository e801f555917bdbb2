package resource

import (
	"fmt"
	"sort"
	"time"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
)

type PeerResource struct {
	ID         int32      `json:"id"`
	Namespace  string     `json:"namespace"`
	PeerID     string     `json:"peerId"`
	AgentAddr  string     `json:"agentAddr"`
	MACAddress string     `json:"macAddress"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type PeerListResource struct {
	Members []*PeerResource `json:"members"`
}

func NewPeer(m *model.Peer) (out *PeerResource) {
	out = &PeerResource{
		ID:         m.ID,
		Namespace:  m.Namespace,
		PeerID:     m.PeerID,
		AgentAddr:  m.AgentAddr,
		MACAddress: m.MACAddress,
	}

	if !m.CreatedAt.IsZero() {
		out.CreatedAt = &time.Time{}
		*out.CreatedAt = m.CreatedAt.Round(time.Second)
	}
	if !m.UpdatedAt.IsZero() {
		out.UpdatedAt = &time.Time{}
		*out.UpdatedAt = m.UpdatedAt.Round(time.Second)
	}

	return // out
}

func NewPeerList(m map[int32]model.Peer) (out *PeerListResource) {
	out = &PeerListResource{
		Members: make([]*PeerResource, 0),
	}

	for _, elem := range m {
		out.Members = append(out.Members, NewPeer(&elem))
	}

	// Default sort by ID
	sort.Slice(out.Members, func(i, j int) bool {
		return out.Members[i].ID < out.Members[j].ID
	})

	return // out
}

func ValidatePeer(r *PeerResource) (m *model.Peer, err error) {
	if r.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	if r.PeerID == "" {
		return nil, fmt.Errorf("peerId is required")
	}
	if r.AgentAddr == "" {
		return nil, fmt.Errorf("agentAddr is required")
	}

	m = &model.Peer{
		Namespace:  r.Namespace,
		PeerID:     r.PeerID,
		AgentAddr:  r.AgentAddr,
		MACAddress: r.MACAddress,
	}

	return m, nil
}
