package agentcontrol

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestReleaseTimerStartReplacesPending(t *testing.T) {
	var fired int32
	rt := &releaseTimer{}

	rt.start(20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	rt.start(20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expected exactly 1 callback, got %d", got)
	}
}

func TestReleaseTimerCancel(t *testing.T) {
	var fired int32
	rt := &releaseTimer{}

	rt.start(20*time.Millisecond, func() { atomic.AddInt32(&fired, 1) })
	rt.cancel()

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("cancelled timer must not fire, got %d callbacks", got)
	}
}

func TestReleaseTimerCancelWithoutStart(t *testing.T) {
	rt := &releaseTimer{}
	rt.cancel()
}
