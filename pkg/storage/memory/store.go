package memory

import "github.com/Jonathan-Adapt/pcbridge/pkg/storage"

// Store contains all memory-based sub-stores for managing the persistent models
type store struct {
	peers    *peerStore
	sessions *sessionStore
	events   *eventStore
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		peers:    newPeerStore(),
		sessions: newSessionStore(),
		events:   newEventStore(),
	}
}

// Peers returns a sub-store for managing the Peer model
func (s *store) Peers() storage.PeerStore {
	return s.peers
}

// Sessions returns a sub-store for managing the Session model
func (s *store) Sessions() storage.SessionStore {
	return s.sessions
}

// Events returns a sub-store for managing the Event model
func (s *store) Events() storage.EventStore {
	return s.events
}
