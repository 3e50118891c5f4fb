package hub

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/libreninja/server/metrics"
	"github.com/libreninja/server/model"
	"github.com/rs/zerolog"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSend            = errors.New("unable to send to session")
)

// Conn is the outbound half of one control-channel connection. Send fails if
// the underlying connection is closed or its send queue stays full.
type Conn interface {
	Send(payload []byte) error
}

// Hub maps live session ids to their connections and fans control messages
// out to them. Delivery failures are reported to the caller for single sends
// and swallowed for broadcasts; they never abort a wider operation.
type Hub struct {
	logger zerolog.Logger
	mx     *sync.RWMutex
	conns  map[string]Conn
}

func New(logger *zerolog.Logger) *Hub {
	return &Hub{
		logger: logger.With().Str("component", "hub").Logger(),
		mx:     &sync.RWMutex{},
		conns:  make(map[string]Conn),
	}
}

// Register inserts a fresh session. Session ids are generated per connection
// and never reused while live.
func (h *Hub) Register(sessionID string, conn Conn) {
	h.mx.Lock()
	h.conns[sessionID] = conn
	h.mx.Unlock()
	h.logger.Debug().Str("sessionID", sessionID).Msg("session registered")
}

// Remove drops the session. Removing an unknown session is a no-op so that
// cleanup paths stay idempotent.
func (h *Hub) Remove(sessionID string) {
	h.mx.Lock()
	delete(h.conns, sessionID)
	h.mx.Unlock()
	h.logger.Debug().Str("sessionID", sessionID).Msg("session removed")
}

// Send delivers one message to a single session.
func (h *Hub) Send(sessionID string, msg model.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return h.send(sessionID, b)
}

// Broadcast sends one message to every listed session except excluded ones.
// Failed recipients are skipped and delivery to the rest continues.
func (h *Hub) Broadcast(sessionIDs []string, msg model.Message, exclude ...string) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshall broadcast message")
		return
	}
Fanout:
	for _, sessionID := range sessionIDs {
		for _, ex := range exclude {
			if sessionID == ex {
				continue Fanout
			}
		}
		if err = h.send(sessionID, b); err != nil {
			h.logger.Debug().Err(err).Str("sessionID", sessionID).Msg("broadcast recipient skipped")
		}
	}
}

func (h *Hub) send(sessionID string, payload []byte) error {
	h.mx.RLock()
	conn, ok := h.conns[sessionID]
	h.mx.RUnlock()
	if !ok {
		metrics.DeliveryFailures.Inc()
		return ErrSessionNotFound
	}
	if err := conn.Send(payload); err != nil {
		metrics.DeliveryFailures.Inc()
		return errors.Join(ErrSend, err)
	}
	return nil
}
