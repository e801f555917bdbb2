package agentcontrol

import (
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/transport"
	"github.com/Jonathan-Adapt/pcbridge/pkg/model"
	"github.com/Jonathan-Adapt/pcbridge/pkg/storage"
)

// SubjectBase is the prefix of all agent control subjects on the command bus.
const SubjectBase = "pcbridge.agentcontrol.v1"

// PropertySetSubject returns the request subject for writing a property.
func PropertySetSubject(namespace, peerID string) string {
	return fmt.Sprintf("%s.%s.peer.%s.property.set", SubjectBase, namespace, peerID)
}

// PropertyGetSubject returns the request subject for reading a property.
func PropertyGetSubject(namespace, peerID string) string {
	return fmt.Sprintf("%s.%s.peer.%s.property.get", SubjectBase, namespace, peerID)
}

// MouseMoveSubject returns the request subject for the mouse move action.
func MouseMoveSubject(namespace, peerID string) string {
	return fmt.Sprintf("%s.%s.peer.%s.mousemove", SubjectBase, namespace, peerID)
}

// EventsSubject returns the publish subject for change events in a namespace.
func EventsSubject(namespace, topic string) string {
	return fmt.Sprintf("%s.%s.events.%s", SubjectBase, namespace, topic)
}

// ControllerOption configures a Controller at construction.
type ControllerOption func(*Controller)

// WithControllerKeyReleaseDelay overrides the key auto-release quiet period
// for all sessions the controller opens.
func WithControllerKeyReleaseDelay(d time.Duration) ControllerOption {
	return func(ctrl *Controller) {
		if d > 0 {
			ctrl.keyReleaseDelay = d
		}
	}
}

// WithControllerReconnectDelay overrides the pause between agent redial
// attempts for all transports the controller opens.
func WithControllerReconnectDelay(d time.Duration) ControllerOption {
	return func(ctrl *Controller) {
		if d > 0 {
			ctrl.reconnectDelay = d
		}
	}
}

// Controller owns one command session per registered peer. It opens the
// transports, routes property requests from the command bus to sessions and
// publishes change events for observers.
type Controller struct {
	nc    *nats.Conn
	store storage.Interface

	keyReleaseDelay time.Duration
	reconnectDelay  time.Duration

	sync.RWMutex
	sessions map[string]*peerSession
}

type peerSession struct {
	peer      model.Peer
	tr        *transport.TCPTransport
	session   *Session
	sessionID int32
}

// NewController creates a controller on top of the given bus connection and
// storage.
func NewController(nc *nats.Conn, store storage.Interface, opts ...ControllerOption) *Controller {
	ctrl := &Controller{
		nc:              nc,
		store:           store,
		keyReleaseDelay: DefaultKeyReleaseDelay,
		reconnectDelay:  transport.DefaultReconnectDelay,
		sessions:        make(map[string]*peerSession),
	}

	for _, opt := range opts {
		opt(ctrl)
	}

	return ctrl
}

// Start opens a session for every peer in the store. Session rows are
// runtime bookkeeping; rows left behind by a previous run that never reached
// Shutdown are purged first so listings only show live sessions.
func (ctrl *Controller) Start() error {
	stale, err := ctrl.store.Sessions().FetchAll()
	if err != nil {
		return err
	}
	for id := range stale {
		if err := ctrl.store.Sessions().Delete(id); err != nil {
			log.Errorf("controller could not purge stale session record %d: %v", id, err)
		}
	}

	peers, err := ctrl.store.Peers().FetchAll()
	if err != nil {
		return err
	}

	for _, peer := range peers {
		if _, err := ctrl.OpenSession(peer); err != nil {
			log.Errorf("controller could not open session for peer '%s': %v", peer.PeerID, err)
		}
	}

	return nil
}

// OpenSession creates the transport and session for a peer and starts the
// connect loop. It fails if a session for the peer exists already.
func (ctrl *Controller) OpenSession(peer model.Peer) (*Session, error) {
	key := sessionKey(peer.Namespace, peer.PeerID)

	ctrl.Lock()
	if _, ok := ctrl.sessions[key]; ok {
		ctrl.Unlock()
		return nil, NewCommandError(ErrReasonSessionExists,
			fmt.Sprintf("a session for '%s' exists already", key))
	}
	// Reserve the slot before the store roundtrip so concurrent opens for
	// the same peer cannot race past each other.
	ctrl.sessions[key] = nil
	ctrl.Unlock()

	record := model.Session{
		Namespace: peer.Namespace,
		PeerID:    peer.PeerID,
		AgentAddr: peer.AgentAddr,
		Connected: false,
	}
	if err := ctrl.store.Sessions().Create(&record); err != nil {
		ctrl.Lock()
		delete(ctrl.sessions, key)
		ctrl.Unlock()
		return nil, NewCommandError(ErrReasonTechnicalException, err.Error())
	}

	tr := transport.NewTCPTransport(peer.AgentAddr, peer.MACAddress, ctrl.reconnectDelay)
	sess := NewSession(tr,
		WithKeyReleaseDelay(ctrl.keyReleaseDelay),
		WithNotifyFunc(func(property string, value interface{}) {
			ctrl.handlePropertyChange(peer, property, value)
		}),
		WithCommandSentFunc(func() {
			ctrl.touchSession(record.ID)
		}))

	tr.Subscribe(func(status transport.Status) {
		ctrl.handlePeerStatus(peer, record.ID, status)
	})

	ps := &peerSession{
		peer:      peer,
		tr:        tr,
		session:   sess,
		sessionID: record.ID,
	}

	ctrl.Lock()
	ctrl.sessions[key] = ps
	ctrl.Unlock()

	tr.Start()
	log.Infof("controller opened session %d for peer '%s' at %s", record.ID, peer.PeerID, peer.AgentAddr)

	return sess, nil
}

// CloseSession tears down a peer's session and removes its record.
func (ctrl *Controller) CloseSession(namespace, peerID string) error {
	key := sessionKey(namespace, peerID)

	ctrl.Lock()
	ps, ok := ctrl.sessions[key]
	delete(ctrl.sessions, key)
	ctrl.Unlock()

	if !ok || ps == nil {
		return NewCommandError(ErrReasonNoSuchPeer,
			fmt.Sprintf("no session for peer '%s'", key))
	}

	ps.session.Close()
	ps.tr.Close()

	if err := ctrl.store.Sessions().Delete(ps.sessionID); err != nil {
		log.Errorf("controller failed to delete session from store: %v", err)
	}

	log.Infof("controller closed session %d for peer '%s'", ps.sessionID, peerID)
	return nil
}

// Session returns the live session for a peer.
func (ctrl *Controller) Session(namespace, peerID string) (*Session, error) {
	ctrl.RLock()
	ps, ok := ctrl.sessions[sessionKey(namespace, peerID)]
	ctrl.RUnlock()

	if !ok || ps == nil {
		return nil, NewCommandError(ErrReasonNoSuchPeer,
			fmt.Sprintf("no session for peer '%s/%s'", namespace, peerID))
	}

	return ps.session, nil
}

// Shutdown closes all sessions without removing the peers.
func (ctrl *Controller) Shutdown() {
	ctrl.Lock()
	sessions := ctrl.sessions
	ctrl.sessions = make(map[string]*peerSession)
	ctrl.Unlock()

	for key, ps := range sessions {
		if ps == nil {
			continue
		}
		ps.session.Close()
		ps.tr.Close()
		if err := ctrl.store.Sessions().Delete(ps.sessionID); err != nil {
			log.Errorf("controller failed to delete session from store: %v", err)
		}
		log.Infof("controller closed session for peer '%s'", key)
	}
}

func sessionKey(namespace, peerID string) string {
	return namespace + "/" + peerID
}
