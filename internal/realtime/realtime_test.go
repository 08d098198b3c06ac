package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/cwrk-planet/bizos/internal/domain"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	user   string
	group  string
	events []domain.GroupEvent
}

func (c *fakeConn) Send(ev domain.GroupEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}
func (c *fakeConn) Close() error    { return nil }
func (c *fakeConn) UserID() string  { return c.user }
func (c *fakeConn) GroupID() string { return c.group }

func (c *fakeConn) got() []domain.GroupEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.GroupEvent(nil), c.events...)
}

func TestHub_BroadcastIsScopedToGroup(t *testing.T) {
	h := NewHub()
	a := &fakeConn{user: "u1", group: "g1"}
	b := &fakeConn{user: "u2", group: "g1"}
	other := &fakeConn{user: "u3", group: "g2"}
	h.Add(a)
	h.Add(b)
	h.Add(other)

	h.Broadcast(domain.GroupEvent{Type: domain.EventMessage, GroupID: "g1"})
	require.Len(t, a.got(), 1)
	require.Len(t, b.got(), 1)
	require.Empty(t, other.got())

	require.ElementsMatch(t, []string{"u1", "u2"}, h.Online("g1"))

	h.Remove(a)
	h.Remove(b)
	require.Empty(t, h.Online("g1"))
	h.Broadcast(domain.GroupEvent{Type: domain.EventMessage, GroupID: "g1"})
	require.Len(t, a.got(), 1)
}

func TestBroker_LocalOnly(t *testing.T) {
	h := NewHub()
	c := &fakeConn{user: "u", group: "g"}
	h.Add(c)

	br := NewBroker(h, nil, "ch", nil)
	br.Publish(context.Background(), domain.GroupEvent{Type: domain.EventTyping, GroupID: "g"})
	require.Len(t, c.got(), 1)
	require.NoError(t, br.Run(context.Background()))
}

func TestBroker_DeliverSkipsOwnOrigin(t *testing.T) {
	h := NewHub()
	c := &fakeConn{user: "u", group: "g"}
	h.Add(c)
	br := NewBroker(h, nil, "ch", nil)

	own, err := json.Marshal(envelope{Origin: br.origin, Event: domain.GroupEvent{Type: "message", GroupID: "g"}})
	require.NoError(t, err)
	br.deliver(own)
	require.Empty(t, c.got())

	foreign, err := json.Marshal(envelope{Origin: "other", Event: domain.GroupEvent{
		Type: "message", GroupID: "g", Payload: map[string]string{"content": "hi"},
	}})
	require.NoError(t, err)
	br.deliver(foreign)

	got := c.got()
	require.Len(t, got, 1)
	require.Equal(t, "message", got[0].Type)
	raw, ok := got[0].Payload.(json.RawMessage)
	require.True(t, ok)
	require.JSONEq(t, `{"content":"hi"}`, string(raw))

	br.deliver([]byte("not json"))
	require.Len(t, c.got(), 1)
}
