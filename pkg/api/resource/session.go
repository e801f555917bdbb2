package resource

import (
	"sort"
	"time"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
)

type SessionResource struct {
	ID            int32      `json:"id"`
	Namespace     string     `json:"namespace"`
	PeerID        string     `json:"peerId"`
	AgentAddr     string     `json:"agentAddr"`
	Connected     bool       `json:"connected"`
	LastCommandAt *time.Time `json:"lastCommandAt,omitempty"`
}

type SessionListResource struct {
	Members []*SessionResource `json:"members"`
}

func NewSession(m *model.Session) (out *SessionResource) {
	out = &SessionResource{
		ID:        m.ID,
		Namespace: m.Namespace,
		PeerID:    m.PeerID,
		AgentAddr: m.AgentAddr,
		Connected: m.Connected,
	}

	if !m.LastCommandAt.IsZero() {
		out.LastCommandAt = &time.Time{}
		*out.LastCommandAt = m.LastCommandAt.Round(time.Second)
	}

	return // out
}

func NewSessionList(m map[int32]model.Session) (out *SessionListResource) {
	out = &SessionListResource{
		Members: make([]*SessionResource, 0),
	}

	for _, elem := range m {
		out.Members = append(out.Members, NewSession(&elem))
	}

	// Default sort by ID
	sort.Slice(out.Members, func(i, j int) bool {
		return out.Members[i].ID < out.Members[j].ID
	})

	return // out
}
