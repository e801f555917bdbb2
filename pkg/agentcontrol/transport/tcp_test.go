package transport

import (
	"bufio"
	"net"
	"sync"
	"testing"
	"time"
)

// statusCollector records status changes for assertions.
type statusCollector struct {
	mu       sync.Mutex
	statuses []Status
	ch       chan Status
}

func newStatusCollector() *statusCollector {
	return &statusCollector{ch: make(chan Status, 8)}
}

func (c *statusCollector) listen(status Status) {
	c.mu.Lock()
	c.statuses = append(c.statuses, status)
	c.mu.Unlock()
	c.ch <- status
}

func (c *statusCollector) wait(t *testing.T, want Status) {
	t.Helper()
	select {
	case got := <-c.ch:
		if got != want {
			t.Fatalf("status = %v, want %v", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for status %v", want)
	}
}

func TestTCPTransportConnectAndWrite(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	lineCh := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		if scanner.Scan() {
			lineCh <- scanner.Text()
		}
	}()

	tr := NewTCPTransport(ln.Addr().String(), "", 100*time.Millisecond)
	collector := newStatusCollector()
	tr.Subscribe(collector.listen)
	tr.Start()
	defer tr.Close()

	collector.wait(t, StatusConnected)
	if !tr.Connected() {
		t.Error("transport should report connected")
	}

	if err := tr.WriteLine("MouseMove 10 20"); err != nil {
		t.Fatal(err)
	}

	select {
	case line := <-lineCh:
		if line != "MouseMove 10 20" {
			t.Errorf("server received %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not receive the line")
	}
}

func TestTCPTransportWriteWhileDisconnected(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:1", "", time.Hour)
	defer tr.Close()

	if err := tr.WriteLine("MouseMove 1 1"); err != ErrNotConnected {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestTCPTransportReconnect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()

	acceptAndHold := func(l net.Listener, closeNow bool) {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		if closeNow {
			conn.Close()
			return
		}
		// Held open until the test finishes.
		go func() {
			buf := make([]byte, 1)
			conn.Read(buf)
			conn.Close()
		}()
	}

	go acceptAndHold(ln, true)

	tr := NewTCPTransport(addr, "", 50*time.Millisecond)
	collector := newStatusCollector()
	tr.Subscribe(collector.listen)
	tr.Start()
	defer tr.Close()

	collector.wait(t, StatusConnected)
	collector.wait(t, StatusDisconnected)

	go acceptAndHold(ln, false)
	collector.wait(t, StatusConnected)

	ln.Close()
}

func TestTCPTransportWakeWithoutMAC(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:1", "", time.Hour)
	defer tr.Close()

	if err := tr.Wake(); err == nil {
		t.Error("wake without MAC address should fail")
	}
}

func TestTCPTransportCloseIdempotent(t *testing.T) {
	tr := NewTCPTransport("127.0.0.1:1", "", 50*time.Millisecond)
	tr.Start()

	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}
