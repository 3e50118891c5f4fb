package registry

import (
	"sync"

	"github.com/libreninja/server/model"
	"github.com/rs/zerolog"
)

// Participant is the durable-within-session record of one connected client:
// its room membership, published stream and display title. Mutable fields are
// guarded by the participant's own lock. Lock order is always registry lock
// first, participant lock second; a registry lock is never acquired while a
// participant lock is held.
type Participant struct {
	mu       sync.Mutex
	uuid     string
	roomID   string
	streamID string
	title    string
}

// UUID returns the session id this participant is keyed by. It is immutable
// for the participant's lifetime.
func (p *Participant) UUID() string { return p.uuid }

func (p *Participant) SetRoom(roomID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.roomID = roomID
}

// Room returns the id of the room this participant is a member of, or the
// empty string.
func (p *Participant) Room() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.roomID
}

func (p *Participant) SetStreamID(streamID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.streamID = streamID
}

func (p *Participant) StreamID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamID
}

func (p *Participant) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

func (p *Participant) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

// Roster returns the participant's listing entry.
func (p *Participant) Roster() model.RosterEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return model.RosterEntry{UUID: p.uuid, StreamID: p.streamID}
}

// Participants maps session ids to participant records. Records are created
// lazily on first reference and removed only on disconnect cleanup.
type Participants struct {
	mu     sync.Mutex
	byID   map[string]*Participant
	logger zerolog.Logger
}

func NewParticipants(logger *zerolog.Logger) *Participants {
	return &Participants{
		byID:   make(map[string]*Participant),
		logger: logger.With().Str("component", "participants").Logger(),
	}
}

// GetOrCreate returns the participant for sessionID, creating it if absent.
// Concurrent calls for the same session id always yield the same record.
func (ps *Participants) GetOrCreate(sessionID string) *Participant {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if p, ok := ps.byID[sessionID]; ok {
		return p
	}
	p := &Participant{uuid: sessionID}
	ps.byID[sessionID] = p
	ps.logger.Debug().Str("sessionID", sessionID).Msg("participant created")
	return p
}

// Get looks up a participant without creating one.
func (ps *Participants) Get(sessionID string) (*Participant, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.byID[sessionID]
	return p, ok
}

// Remove drops the record for sessionID. Removing an unknown session is a
// no-op so that disconnect cleanup stays idempotent.
func (ps *Participants) Remove(sessionID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.byID, sessionID)
}
