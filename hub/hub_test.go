package hub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/libreninja/server/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     bool
}

func (f *fakeConn) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("peer is gone")
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakeConn) messages(t *testing.T) []model.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Message, 0, len(f.payloads))
	for _, b := range f.payloads {
		var msg model.Message
		require.NoError(t, json.Unmarshal(b, &msg))
		out = append(out, msg)
	}
	return out
}

func newTestHub() *Hub {
	l := zerolog.Nop()
	return New(&l)
}

func TestSendToRegisteredSession(t *testing.T) {
	h := newTestHub()
	conn := &fakeConn{}
	h.Register("s1", conn)

	require.NoError(t, h.Send("s1", model.Message{"request": "offerSDP", "UUID": "s2"}))

	msgs := conn.messages(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, "offerSDP", msgs[0]["request"])
	assert.Equal(t, "s2", msgs[0]["UUID"])
}

func TestSendToUnknownSession(t *testing.T) {
	h := newTestHub()
	err := h.Send("ghost", model.Message{"request": "offerSDP"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	h := newTestHub()
	conn := &fakeConn{}
	h.Register("s1", conn)

	h.Remove("s1")
	h.Remove("s1")

	assert.ErrorIs(t, h.Send("s1", model.Message{}), ErrSessionNotFound)
}

func TestBroadcastExcludesSender(t *testing.T) {
	h := newTestHub()
	a, b, c := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", b)
	h.Register("c", c)

	h.Broadcast([]string{"a", "b", "c"}, model.Message{"request": "someonejoined"}, "b")

	assert.Len(t, a.messages(t), 1)
	assert.Empty(t, b.messages(t))
	assert.Len(t, c.messages(t), 1)
}

func TestBroadcastSkipsFailedRecipients(t *testing.T) {
	h := newTestHub()
	a, c := &fakeConn{}, &fakeConn{}
	h.Register("a", a)
	h.Register("b", &fakeConn{fail: true})
	h.Register("c", c)

	// "b" fails, "ghost" is not registered; delivery to the rest continues
	h.Broadcast([]string{"a", "b", "ghost", "c"}, model.Message{"request": "videoaddedtoroom"})

	assert.Len(t, a.messages(t), 1)
	assert.Len(t, c.messages(t), 1)
}
