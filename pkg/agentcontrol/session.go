package agentcontrol

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/proto"
	"github.com/Jonathan-Adapt/pcbridge/pkg/agentcontrol/transport"
)

// DefaultKeyReleaseDelay is the quiet period after which a held key
// combination is released automatically.
const DefaultKeyReleaseDelay = 200 * time.Millisecond

// NotifyFunc is called whenever an externally observable property value
// changes. It is the session's only channel back to the host integration.
// Callbacks run after the session released its internal lock, so they may
// read session state but should not block for long.
type NotifyFunc func(property string, value interface{})

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithKeyReleaseDelay overrides the key auto-release quiet period.
func WithKeyReleaseDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.releaseDelay = d
		}
	}
}

// WithNotifyFunc sets the change notification callback.
func WithNotifyFunc(fn NotifyFunc) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.notify = fn
		}
	}
}

// WithCommandSentFunc sets a callback invoked once per setter invocation that
// wrote at least one command to the transport. Like notifications it runs
// after the session released its internal lock.
func WithCommandSentFunc(fn func()) SessionOption {
	return func(s *Session) {
		if fn != nil {
			s.onCommand = fn
		}
	}
}

// notification is a queued property change, fired after the lock is
// released.
type notification struct {
	property string
	value    interface{}
}

// Session is the live adapter state bound to one remote agent transport. All
// property writes map to outbound line commands; derived state such as power
// is computed, never stored. Setters serialize on the session mutex, so the
// commands emitted within one setter invocation are never interleaved with
// another setter's commands.
type Session struct {
	mu sync.Mutex
	tr transport.Transport

	program   string
	running   *proto.ProgramSpec
	keyCombo  string
	leftDown  bool
	rightDown bool
	connected bool

	releaseTimer releaseTimer
	releaseDelay time.Duration
	releaseGen   uint64

	notify    NotifyFunc
	onCommand func()
}

// NewSession binds a session to a transport. The connection state is seeded
// from the transport's current status, which covers transports that are
// already connected when the session starts.
func NewSession(tr transport.Transport, opts ...SessionOption) *Session {
	s := &Session{
		tr:           tr,
		releaseDelay: DefaultKeyReleaseDelay,
		notify:       func(string, interface{}) {},
		onCommand:    func() {},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.connected = tr.Connected()
	tr.Subscribe(s.handleConnectionStatus)

	return s
}

// Close cancels the pending key release, if any. The transport is owned by
// the caller and is not touched.
func (s *Session) Close() {
	s.releaseTimer.cancel()
}

// handleConnectionStatus tracks the transport's connection state. After a
// disconnect the remote process state is unknown, so the program resets to
// "none". A change notification for the derived power property fires on
// every status event.
func (s *Session) handleConnectionStatus(status transport.Status) {
	s.mu.Lock()
	s.connected = status == transport.StatusConnected
	if !s.connected {
		s.program = ""
		s.running = nil
	}
	power := s.powerLocked()
	s.mu.Unlock()

	s.notify(PropertyPower, power)
}

// send encodes the command and writes it as one line to the transport. Write
// failures propagate to the caller as-is; retrying is the transport layer's
// business, not ours.
func (s *Session) send(cmd proto.Command) error {
	return s.tr.WriteLine(cmd.Marshal())
}

func (s *Session) fire(notes []notification) {
	for _, n := range notes {
		s.notify(n.property, n.value)
	}
}

// Program returns the program property as the original unparsed input
// string, not a reconstruction from the parsed spec.
func (s *Session) Program() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

// SetProgram replaces the running remote program. A previously running
// program is terminated first, then the new one launched, in that order
// within this single call. Empty or malformed input is normalized to "no
// program" and only terminates.
func (s *Session) SetProgram(input string) error {
	s.mu.Lock()

	prev := s.running
	spec := proto.ParseProgram(input)

	powerBefore := s.powerLocked()
	changed := s.program != input

	s.program = input
	s.running = spec

	var err error
	sent := false
	if prev != nil {
		err = s.send(proto.NewTerminateCommand(prev))
		sent = err == nil
	}

	if err == nil && spec != nil {
		if spec.ContainsUnsafeQuoting() {
			// The agent's quoting rule has no escape mechanism; behavior for
			// embedded quote characters is undefined on the remote side.
			log.Warnf("session sends program with embedded quote characters, agent behavior is undefined: %q", input)
		}
		err = s.send(proto.NewLaunchCommand(spec))
		sent = sent || err == nil
	}

	var notes []notification
	if changed {
		notes = append(notes, notification{PropertyProgram, input})
	}
	if power := s.powerLocked(); power != powerBefore {
		notes = append(notes, notification{PropertyPower, power})
	}
	s.mu.Unlock()

	if sent {
		s.onCommand()
	}
	s.fire(notes)
	return err
}

// Power reports the derived power state: the transport is connected and the
// current program is not the well-known shutdown program.
func (s *Session) Power() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.powerLocked()
}

func (s *Session) powerLocked() bool {
	return s.connected && s.program != proto.ShutdownProgram
}

// SetPower turns the peer on or off. Off runs the shutdown program through
// the normal program write path, so a running program receives its Terminate
// first. On only signals a wake to the transport when disconnected; the
// local power value is never flipped proactively, it follows later from the
// transport's status events.
func (s *Session) SetPower(on bool) error {
	if !on {
		return s.SetProgram(proto.ShutdownProgram)
	}

	if !s.tr.Connected() {
		return s.tr.Wake()
	}

	return nil
}

// KeyDown returns the current key combination property.
func (s *Session) KeyDown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keyCombo
}

// SetKeyDown stores the key combination and sends a single KeyPress for it.
// Rapid repeated writes are debounced: each write restarts the auto-release
// timer and only the most recent timer is live. An empty combination clears
// the state without sending anything; it is also the auto-release path.
func (s *Session) SetKeyDown(combo string) error {
	s.mu.Lock()

	changed := s.keyCombo != combo
	s.keyCombo = combo

	var notes []notification
	if changed {
		notes = append(notes, notification{PropertyKeyDown, combo})
	}

	if combo == "" {
		s.releaseGen++
		s.releaseTimer.cancel()
		s.mu.Unlock()
		s.fire(notes)
		return nil
	}

	key, modifiers := proto.ParseKeyCombo(combo)
	err := s.send(proto.NewKeyPressCommand(key, modifiers))

	s.releaseGen++
	gen := s.releaseGen
	s.releaseTimer.start(s.releaseDelay, func() {
		s.autoReleaseKeys(gen)
	})

	s.mu.Unlock()

	if err == nil {
		s.onCommand()
	}
	s.fire(notes)
	return err
}

// autoReleaseKeys fires when the quiet period expires. The generation guard
// drops stale callbacks that lost the race against a newer key write.
func (s *Session) autoReleaseKeys(gen uint64) {
	s.mu.Lock()
	if gen != s.releaseGen || s.keyCombo == "" {
		s.mu.Unlock()
		return
	}
	s.keyCombo = ""
	s.mu.Unlock()

	s.notify(PropertyKeyDown, "")
}

// LeftDown returns the left mouse button property.
func (s *Session) LeftDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leftDown
}

// SetLeftDown presses or releases the left mouse button. Unchanged values
// are a no-op: no command is sent.
func (s *Session) SetLeftDown(down bool) error {
	return s.setButton(&s.leftDown, PropertyLeftDown, proto.ButtonMaskLeft, down)
}

// RightDown returns the right mouse button property.
func (s *Session) RightDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rightDown
}

// SetRightDown presses or releases the right mouse button. Unchanged values
// are a no-op: no command is sent.
func (s *Session) SetRightDown(down bool) error {
	return s.setButton(&s.rightDown, PropertyRightDown, proto.ButtonMaskRight, down)
}

func (s *Session) setButton(field *bool, property string, buttonMask int, down bool) error {
	s.mu.Lock()

	if *field == down {
		s.mu.Unlock()
		return nil
	}
	*field = down

	action := proto.PressActionUp
	if down {
		action = proto.PressActionDown
	}
	err := s.send(proto.NewMousePressCommand(buttonMask, action))

	s.mu.Unlock()

	if err == nil {
		s.onCommand()
	}
	s.notify(property, down)
	return err
}

// MoveMouse moves the remote pointer to absolute coordinates. Stateless.
func (s *Session) MoveMouse(x, y int) error {
	s.mu.Lock()
	err := s.send(proto.NewMouseMoveCommand(x, y))
	s.mu.Unlock()

	if err == nil {
		s.onCommand()
	}
	return err
}

// Connected reports the tracked transport connection state.
func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
