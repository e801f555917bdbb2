package agentcontrol

import (
	"net"
	"testing"
	"time"

	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage/memory"
)

func TestSplitPeerSubject(t *testing.T) {
	namespace, peerID, ok := splitPeerSubject(SubjectBase + ".default.peer.lobby-pc.property.set")
	if !ok {
		t.Fatal("expected subject to parse")
	}
	if namespace != "default" || peerID != "lobby-pc" {
		t.Errorf("got namespace=%q peerID=%q", namespace, peerID)
	}

	if _, _, ok := splitPeerSubject(SubjectBase + ".default.events.propertychange"); ok {
		t.Error("event subject should not parse as peer subject")
	}
	if _, _, ok := splitPeerSubject("some.other.subject"); ok {
		t.Error("foreign subject should not parse")
	}
}

func TestSubjectBuilders(t *testing.T) {
	if got := PropertySetSubject("default", "lobby-pc"); got != "pcbridge.agentcontrol.v1.default.peer.lobby-pc.property.set" {
		t.Errorf("unexpected subject: %q", got)
	}
	if got := PropertyGetSubject("default", "lobby-pc"); got != "pcbridge.agentcontrol.v1.default.peer.lobby-pc.property.get" {
		t.Errorf("unexpected subject: %q", got)
	}
	if got := MouseMoveSubject("default", "lobby-pc"); got != "pcbridge.agentcontrol.v1.default.peer.lobby-pc.mousemove" {
		t.Errorf("unexpected subject: %q", got)
	}
	if got := EventsSubject("default", "propertychange"); got != "pcbridge.agentcontrol.v1.default.events.propertychange" {
		t.Errorf("unexpected subject: %q", got)
	}
}

func TestControllerSessionLifecycle(t *testing.T) {
	store := memory.NewStore()
	ctrl := NewController(nil, store,
		WithControllerReconnectDelay(time.Hour))

	peer := model.Peer{
		Namespace: "default",
		PeerID:    "lobby-pc",
		// Port 1 is unroutable, the transport stays in its redial loop.
		AgentAddr: "127.0.0.1:1",
	}
	if err := store.Peers().Create(&peer); err != nil {
		t.Fatal(err)
	}

	sess, err := ctrl.OpenSession(peer)
	if err != nil {
		t.Fatal(err)
	}
	if sess == nil {
		t.Fatal("expected a session")
	}

	if _, err := ctrl.OpenSession(peer); err == nil {
		t.Error("second open for the same peer should fail")
	} else if e, ok := err.(*CommandError); !ok || e.Reason != ErrReasonSessionExists {
		t.Errorf("unexpected error: %v", err)
	}

	got, err := ctrl.Session("default", "lobby-pc")
	if err != nil {
		t.Fatal(err)
	}
	if got != sess {
		t.Error("session lookup returned a different session")
	}

	if _, err := ctrl.Session("default", "unknown"); err == nil {
		t.Error("lookup of unknown peer should fail")
	}

	record, err := store.Sessions().FindByNamespaceAndPeerID("default", "lobby-pc")
	if err != nil {
		t.Fatal(err)
	}
	if record.AgentAddr != peer.AgentAddr {
		t.Errorf("session record = %+v", record)
	}

	if err := ctrl.CloseSession("default", "lobby-pc"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Session("default", "lobby-pc"); err == nil {
		t.Error("closed session should not resolve")
	}
	if _, err := store.Sessions().FindByNamespaceAndPeerID("default", "lobby-pc"); err == nil {
		t.Error("session record should be deleted")
	}
}

func TestControllerStampsLastCommand(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	// Agent stand-in: accept and hold the connection open.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	store := memory.NewStore()
	ctrl := NewController(nil, store,
		WithControllerReconnectDelay(50*time.Millisecond))
	defer ctrl.Shutdown()

	peer := model.Peer{
		Namespace: "default",
		PeerID:    "lobby-pc",
		AgentAddr: ln.Addr().String(),
	}
	if err := store.Peers().Create(&peer); err != nil {
		t.Fatal(err)
	}

	sess, err := ctrl.OpenSession(peer)
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !sess.Connected() {
		if time.Now().After(deadline) {
			t.Fatal("transport did not connect")
		}
		time.Sleep(5 * time.Millisecond)
	}

	record, err := store.Sessions().FindByNamespaceAndPeerID("default", "lobby-pc")
	if err != nil {
		t.Fatal(err)
	}
	if !record.LastCommandAt.IsZero() {
		t.Error("last command time should be unset before any command")
	}

	if err := sess.SetProgram(`player.exe|C:\Media`); err != nil {
		t.Fatal(err)
	}
	if err := sess.MoveMouse(10, 20); err != nil {
		t.Fatal(err)
	}

	record, err = store.Sessions().FindByNamespaceAndPeerID("default", "lobby-pc")
	if err != nil {
		t.Fatal(err)
	}
	if record.LastCommandAt.IsZero() {
		t.Error("last command time should be stamped after routing commands")
	}
}

func TestControllerStartPurgesStaleSessions(t *testing.T) {
	store := memory.NewStore()

	// Row left behind by a run that never reached Shutdown.
	stale := model.Session{
		Namespace: "default",
		PeerID:    "ghost",
		AgentAddr: "10.0.0.9:3047",
		Connected: true,
	}
	if err := store.Sessions().Create(&stale); err != nil {
		t.Fatal(err)
	}

	peer := model.Peer{
		Namespace: "default",
		PeerID:    "lobby-pc",
		AgentAddr: "127.0.0.1:1",
	}
	if err := store.Peers().Create(&peer); err != nil {
		t.Fatal(err)
	}

	ctrl := NewController(nil, store,
		WithControllerReconnectDelay(time.Hour))
	defer ctrl.Shutdown()

	if err := ctrl.Start(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Sessions().FindByNamespaceAndPeerID("default", "ghost"); err == nil {
		t.Error("stale session row should be purged on start")
	}

	all, err := store.Sessions().FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly the live session row, got %d", len(all))
	}
	if _, err := store.Sessions().FindByNamespaceAndPeerID("default", "lobby-pc"); err != nil {
		t.Errorf("live session row missing: %v", err)
	}
}
