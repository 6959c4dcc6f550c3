package tracking

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the registry needs. Tests substitute
// in-memory fakes.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Registry tracks the currently open subscriber channels. It is written
// from the accept path, the disconnect path and the publish path, so every
// operation takes the one mutex.
type Registry struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[Conn]struct{})}
}

func (r *Registry) Register(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c] = struct{}{}
}

func (r *Registry) Unregister(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, c)
}

// Broadcast delivers message to every registered channel, best effort. A
// channel whose send fails is closed and dropped; the failure is never
// surfaced to the publisher and the remaining sends continue.
func (r *Registry) Broadcast(message []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for c := range r.conns {
		if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
			_ = c.Close()
			delete(r.conns, c)
		}
	}
}

// Count reports the number of open channels.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
