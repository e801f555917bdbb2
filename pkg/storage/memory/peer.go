package memory

import (
	"sync"
	"time"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

type peerStore struct {
	store  map[int32]model.Peer
	nextID int32
	sync.RWMutex
}

func newPeerStore() *peerStore {
	return &peerStore{
		store:  make(map[int32]model.Peer),
		nextID: 1,
	}
}

func (s *peerStore) FetchAll() (models map[int32]model.Peer, err error) {
	s.RLock()
	defer s.RUnlock()
	models = make(map[int32]model.Peer, len(s.store))

	for id, m := range s.store {
		models[id] = m
	}

	return models, nil
}

func (s *peerStore) FindByID(id int32) (*model.Peer, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[id]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *peerStore) FindByNamespaceAndPeerID(namespace, peerID string) (*model.Peer, error) {
	s.RLock()
	defer s.RUnlock()

	for _, m := range s.store {
		if m.Namespace == namespace && m.PeerID == peerID {
			return &m, nil
		}
	}

	return nil, storage.ErrNotFound
}

func (s *peerStore) Create(m *model.Peer) error {
	s.Lock()
	defer s.Unlock()

	m.ID = s.getNextID()
	m.CreatedAt = time.Now().Round(time.Second).UTC()
	m.UpdatedAt = time.Now().Round(time.Second).UTC()

	s.store[m.ID] = *m

	return nil
}

func (s *peerStore) Delete(id int32) error {
	s.Lock()
	defer s.Unlock()

	_, ok := s.store[id]
	if !ok {
		return storage.ErrNotFound
	}

	delete(s.store, id)

	return nil
}

func (s *peerStore) getNextID() int32 {
	id := s.nextID
	s.nextID++
	return id
}
