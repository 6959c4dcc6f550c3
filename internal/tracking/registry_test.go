package tracking

import (
	"errors"
	"sync"
	"testing"
)

// fakeConn records broadcast frames and can simulate a dead peer.
type fakeConn struct {
	mu       sync.Mutex
	messages []string
	fail     bool
	closed   bool
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, string(data))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.messages))
	copy(out, f.messages)
	return out
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	reg := NewRegistry()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		reg.Register(c)
	}

	reg.Broadcast([]byte("Message: ping"))

	for i, c := range conns {
		got := c.received()
		if len(got) != 1 || got[0] != "Message: ping" {
			t.Errorf("subscriber %d received %v, want [Message: ping]", i, got)
		}
	}
}

func TestBroadcastDropsFailedChannel(t *testing.T) {
	reg := NewRegistry()
	healthy := &fakeConn{}
	dead := &fakeConn{fail: true}
	reg.Register(healthy)
	reg.Register(dead)

	reg.Broadcast([]byte("a"))

	if got := healthy.received(); len(got) != 1 {
		t.Fatalf("healthy subscriber received %v, want one message", got)
	}
	if !dead.closed {
		t.Fatal("failed channel was not closed")
	}
	if reg.Count() != 1 {
		t.Fatalf("registry count = %d, want 1 after dropping dead channel", reg.Count())
	}

	// The survivor keeps receiving.
	reg.Broadcast([]byte("b"))
	if got := healthy.received(); len(got) != 2 {
		t.Fatalf("healthy subscriber received %v, want two messages", got)
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	reg := NewRegistry()
	c := &fakeConn{}
	reg.Register(c)
	reg.Unregister(c)

	reg.Broadcast([]byte("x"))

	if got := c.received(); len(got) != 0 {
		t.Fatalf("unregistered subscriber received %v", got)
	}
	if reg.Count() != 0 {
		t.Fatalf("registry count = %d, want 0", reg.Count())
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &fakeConn{}
			reg.Register(c)
			reg.Broadcast([]byte("tick"))
			reg.Unregister(c)
		}()
	}
	wg.Wait()

	if reg.Count() != 0 {
		t.Fatalf("registry count = %d, want 0 after all goroutines unregistered", reg.Count())
	}
}
