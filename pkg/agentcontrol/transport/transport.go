package transport

// Status describes the connection state of a transport.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnected
)

func (s Status) String() string {
	if s == StatusConnected {
		return "CONNECTED"
	}
	return "DISCONNECTED"
}

// StatusListener is called on every connection status change. Listeners run
// on the transport's goroutine and must not block.
type StatusListener func(Status)

// Transport is the line-oriented connection to a remote control agent. The
// session core depends on this interface only; the TCP implementation lives
// next to it, test fakes live with the tests.
type Transport interface {
	// WriteLine writes one line to the agent. The transport owns the line
	// framing. A write failure is returned as-is, there is no retry.
	WriteLine(line string) error

	// Connected reports the current connection status.
	Connected() bool

	// Subscribe registers a listener for connection status changes.
	Subscribe(l StatusListener)

	// Wake signals the remote peer to power up, e.g. by wake-on-LAN. It does
	// not wait for the peer to come online.
	Wake() error

	// Close tears the connection down and stops any reconnect attempts.
	Close() error
}
