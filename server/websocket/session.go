package websocket

import (
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionClosed  = errors.New("session is closed")
	ErrEnqueueTimeout = errors.New("session send queue is full")
)

// session is the outbound half of one live connection. Send enqueues into a
// bounded queue drained by the connection's sender goroutine, so a slow peer
// stalls only its own queue and the stall is bounded by the enqueue timeout.
type session struct {
	id        string
	tx        chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(id string) *session {
	return &session{
		id:   id,
		tx:   make(chan []byte, defaultSendQueueSize),
		done: make(chan struct{}),
	}
}

func (s *session) Send(payload []byte) error {
	t := time.NewTimer(defaultEnqueueTimeout)
	defer t.Stop()
	select {
	case s.tx <- payload:
		return nil
	case <-s.done:
		return ErrSessionClosed
	case <-t.C:
		return ErrEnqueueTimeout
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// newSessionID returns a fresh 128-bit random session identifier, hex-encoded
// to 32 characters.
func newSessionID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
