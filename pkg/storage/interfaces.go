package storage

import "github.com/Jonathan-Adapt/pcbridge/pkg/model"

// Interface is implemented by the storage
type Interface interface {
	Peers() PeerStore
	Sessions() SessionStore
	Events() EventStore
}

// PeerStore is responsible for managing the Peer model
type PeerStore interface {
	FetchAll() (map[int32]model.Peer, error)
	FindByID(id int32) (*model.Peer, error)
	FindByNamespaceAndPeerID(namespace, peerID string) (*model.Peer, error)
	Create(m *model.Peer) error
	Delete(id int32) error
}

// SessionStore is responsible for managing the Session model
type SessionStore interface {
	FetchAll() (map[int32]model.Session, error)
	FindByID(id int32) (*model.Session, error)
	FindByNamespaceAndPeerID(namespace, peerID string) (*model.Session, error)
	Create(m *model.Session) error
	Update(m *model.Session) error
	Delete(id int32) error
}

// EventStore is responsible for managing the Event model
type EventStore interface {
	FetchAll() (map[int32]model.Event, error)
	FindByID(id int32) (*model.Event, error)
	Create(m *model.Event) error
}
