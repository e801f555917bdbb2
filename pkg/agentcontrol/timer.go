package agentcontrol

import (
	"sync"
	"time"
)

// releaseTimer is a single-shot, cancelable delayed action. A session owns
// exactly one instance for the key auto-release role; start replaces any
// pending run, so at most one callback is ever live.
type releaseTimer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// start schedules fn after delay, cancelling a pending run first.
func (rt *releaseTimer) start(delay time.Duration, fn func()) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.timer != nil {
		rt.timer.Stop()
	}
	rt.timer = time.AfterFunc(delay, fn)
}

// cancel stops a pending run. It is a no-op if nothing is scheduled.
func (rt *releaseTimer) cancel() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.timer != nil {
		rt.timer.Stop()
		rt.timer = nil
	}
}
