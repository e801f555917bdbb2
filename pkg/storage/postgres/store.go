package postgres

import (
	"github.com/jmoiron/sqlx"
	// Register the postgres driver for sqlx.Open("postgres", ...)
	_ "github.com/lib/pq"

	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

// store contains all PostgreSQL based sub-stores for managing the models
type store struct {
	peers    *peerStore
	sessions *sessionStore
	events   *eventStore
}

// NewStore creates a new PostgreSQL based Storage interface
func NewStore(db *sqlx.DB) storage.Interface {
	return &store{
		peers:    newPeerStore(db),
		sessions: newSessionStore(db),
		events:   newEventStore(db),
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
