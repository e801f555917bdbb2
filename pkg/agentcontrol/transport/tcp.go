package transport

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNotConnected is returned by WriteLine while the transport has no live
// connection to the agent.
var ErrNotConnected = errors.New("transport: not connected")

const DefaultReconnectDelay = 10 * time.Second

// TCPTransport maintains a line-oriented TCP connection to a remote control
// agent, redialing after connection loss until Close is called.
type TCPTransport struct {
	addr           string
	mac            string
	reconnectDelay time.Duration

	mu        sync.Mutex
	conn      net.Conn
	listeners []StatusListener

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTCPTransport creates a transport for the agent at addr. mac is the
// peer's hardware address used for wake-on-LAN; it may be empty if the peer
// cannot be woken. The transport is idle until Start is called.
func NewTCPTransport(addr, mac string, reconnectDelay time.Duration) *TCPTransport {
	if reconnectDelay <= 0 {
		reconnectDelay = DefaultReconnectDelay
	}
	return &TCPTransport{
		addr:           addr,
		mac:            mac,
		reconnectDelay: reconnectDelay,
		stopCh:         make(chan struct{}),
	}
}

// Start launches the connect loop in the background.
func (t *TCPTransport) Start() {
	t.wg.Add(1)
	go t.connectLoop()
}

func (t *TCPTransport) connectLoop() {
	defer t.wg.Done()

	for {
		conn, err := net.Dial("tcp", t.addr)
		if err != nil {
			log.Debugf("transport could not reach agent at %s: %v", t.addr, err)
			if !t.waitForRedial() {
				return
			}
			continue
		}

		log.Infof("transport connected to agent at %s", t.addr)
		t.mu.Lock()
		t.conn = conn
		t.mu.Unlock()
		t.notifyStatus(StatusConnected)

		// Drain inbound lines until the connection drops. The agent protocol
		// is fire-and-forget, inbound data carries no state we track.
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			log.Debugf("transport received line from agent: %s", scanner.Text())
		}

		log.Warnf("transport lost connection to agent at %s", t.addr)
		t.mu.Lock()
		t.conn = nil
		t.mu.Unlock()
		conn.Close()
		t.notifyStatus(StatusDisconnected)

		if !t.waitForRedial() {
			return
		}
	}
}

// waitForRedial pauses between dial attempts. It returns false when the
// transport is closing.
func (t *TCPTransport) waitForRedial() bool {
	select {
	case <-t.stopCh:
		return false
	case <-time.After(t.reconnectDelay):
		return true
	}
}

// WriteLine writes one line to the agent, appending the line terminator.
func (t *TCPTransport) WriteLine(line string) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	if _, err := conn.Write([]byte(line + "\n")); err != nil {
		return errors.Wrap(err, "transport: write failed")
	}

	return nil
}

// Connected reports whether a connection to the agent is live.
func (t *TCPTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

// Subscribe registers a status listener.
func (t *TCPTransport) Subscribe(l StatusListener) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, l)
}

func (t *TCPTransport) notifyStatus(status Status) {
	t.mu.Lock()
	listeners := make([]StatusListener, len(t.listeners))
	copy(listeners, t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l(status)
	}
}

// Wake sends a wake-on-LAN magic packet for the peer's MAC address.
func (t *TCPTransport) Wake() error {
	if t.mac == "" {
		return errors.New("transport: no MAC address configured for wake")
	}
	log.Infof("transport sends wake-on-LAN packet for %s", t.mac)
	return sendMagicPacket(t.mac)
}

// Close stops the reconnect loop and tears down any live connection.
func (t *TCPTransport) Close() error {
	t.stopOnce.Do(func() {
		close(t.stopCh)
	})

	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn != nil {
		conn.Close()
	}

	t.wg.Wait()
	return nil
}
