package memory

import (
	"testing"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

func TestPeerStoreCreateAndFind(t *testing.T) {
	s := NewStore()

	m := &model.Peer{
		Namespace:  "default",
		PeerID:     "lobby-pc",
		AgentAddr:  "10.0.0.5:3047",
		MACAddress: "00:11:22:33:44:55",
	}
	if err := s.Peers().Create(m); err != nil {
		t.Fatal(err)
	}
	if m.ID == 0 {
		t.Error("create should assign an ID")
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("create should set timestamps")
	}

	found, err := s.Peers().FindByID(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found.PeerID != "lobby-pc" {
		t.Errorf("unexpected peer: %+v", found)
	}

	found, err = s.Peers().FindByNamespaceAndPeerID("default", "lobby-pc")
	if err != nil {
		t.Fatal(err)
	}
	if found.ID != m.ID {
		t.Errorf("unexpected peer: %+v", found)
	}
}

func TestPeerStoreNotFound(t *testing.T) {
	s := NewStore()

	if _, err := s.Peers().FindByID(42); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Peers().FindByNamespaceAndPeerID("default", "nope"); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Peers().Delete(42); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPeerStoreDelete(t *testing.T) {
	s := NewStore()

	m := &model.Peer{Namespace: "default", PeerID: "lobby-pc"}
	if err := s.Peers().Create(m); err != nil {
		t.Fatal(err)
	}
	if err := s.Peers().Delete(m.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Peers().FindByID(m.ID); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSessionStoreUpdate(t *testing.T) {
	s := NewStore()

	m := &model.Session{
		Namespace: "default",
		PeerID:    "lobby-pc",
		AgentAddr: "10.0.0.5:3047",
	}
	if err := s.Sessions().Create(m); err != nil {
		t.Fatal(err)
	}

	m.Connected = true
	if err := s.Sessions().Update(m); err != nil {
		t.Fatal(err)
	}

	found, err := s.Sessions().FindByID(m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !found.Connected {
		t.Error("update should persist connected flag")
	}
}

func TestSessionStoreUpdateUnknown(t *testing.T) {
	s := NewStore()

	m := &model.Session{ID: 42, Namespace: "default", PeerID: "nope"}
	if err := s.Sessions().Update(m); err != storage.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventStoreCreateAndFetchAll(t *testing.T) {
	s := NewStore()

	for i := 0; i < 3; i++ {
		m := &model.Event{
			Namespace: "default",
			PeerID:    "lobby-pc",
			Topic:     "propertychange",
			Details:   `{"property":"power","value":true}`,
		}
		if err := s.Events().Create(m); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.Events().FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 events, got %d", len(all))
	}
}
