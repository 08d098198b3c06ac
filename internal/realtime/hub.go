package realtime

import (
	"sync"

	"github.com/cwrk-planet/bizos/internal/domain"
)

// Conn: одно websocket-подключение участника группы.
type Conn interface {
	Send(ev domain.GroupEvent) error
	Close() error
	UserID() string
	GroupID() string
}

type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[Conn]struct{} // groupID -> set of connections
}

func NewHub() *Hub {
	return &Hub{groups: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	gs, ok := h.groups[c.GroupID()]
	if !ok {
		gs = make(map[Conn]struct{})
		h.groups[c.GroupID()] = gs
	}
	gs[c] = struct{}{}
}

func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gs, ok := h.groups[c.GroupID()]; ok {
		delete(gs, c)
		if len(gs) == 0 {
			delete(h.groups, c.GroupID())
		}
	}
}

func (h *Hub) Broadcast(ev domain.GroupEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.groups[ev.GroupID] {
		_ = c.Send(ev) // best-effort
	}
}

// Online: пользователи группы с открытым подключением на этом инстансе.
func (h *Hub) Online(groupID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0, len(h.groups[groupID]))
	for c := range h.groups[groupID] {
		if _, dup := seen[c.UserID()]; dup {
			continue
		}
		seen[c.UserID()] = struct{}{}
		out = append(out, c.UserID())
	}
	return out
}
