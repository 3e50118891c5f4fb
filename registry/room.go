package registry

import (
	"sync"

	"github.com/libreninja/server/metrics"
	"github.com/rs/zerolog"
)

// Room is a named group of participants with an optional director. The member
// list keeps insertion order and holds at most one entry per session id. The
// room's own lock guards both list and director; participant locks are never
// taken while it is held.
type Room struct {
	mu           sync.Mutex
	id           string
	director     *Participant
	participants []*Participant
}

func (r *Room) ID() string { return r.id }

// Add appends p to the member list unless it is already a member.
func (r *Room) Add(p *Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.participants {
		if member.UUID() == p.UUID() {
			return
		}
	}
	r.participants = append(r.participants, p)
}

// Remove deletes the member with the given session id, clearing the director
// reference if it pointed at that member. It reports whether the session was
// a member.
func (r *Room) Remove(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, member := range r.participants {
		if member.UUID() == sessionID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			if r.director != nil && r.director.UUID() == sessionID {
				r.director = nil
			}
			return true
		}
	}
	return false
}

// Member reports whether the session is currently in the room.
func (r *Room) Member(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.participants {
		if member.UUID() == sessionID {
			return true
		}
	}
	return false
}

// Claim assigns p as the room's director if p is a current member and reports
// whether the assignment happened.
func (r *Room) Claim(p *Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.participants {
		if member.UUID() == p.UUID() {
			r.director = p
			return true
		}
	}
	return false
}

// Director returns the current director, or nil.
func (r *Room) Director() *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.director
}

// Snapshot returns a copy of the member list in insertion order. Fan-outs
// operate on the snapshot so that delivery never blocks membership changes.
func (r *Room) Snapshot() []*Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants)
}

// Rooms maps room ids to rooms. Room ids are caller-supplied and rooms
// persist for the life of the process once created.
type Rooms struct {
	mu     sync.Mutex
	byID   map[string]*Room
	logger zerolog.Logger
}

func NewRooms(logger *zerolog.Logger) *Rooms {
	return &Rooms{
		byID:   make(map[string]*Room),
		logger: logger.With().Str("component", "rooms").Logger(),
	}
}

// GetOrCreate returns the room for roomID, creating it if absent, and reports
// whether it already existed.
func (rs *Rooms) GetOrCreate(roomID string) (*Room, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if room, ok := rs.byID[roomID]; ok {
		return room, true
	}
	room := &Room{id: roomID}
	rs.byID[roomID] = room
	metrics.Rooms.Inc()
	rs.logger.Debug().Str("roomID", roomID).Msg("room created")
	return room, false
}

func (rs *Rooms) Get(roomID string) (*Room, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	room, ok := rs.byID[roomID]
	return room, ok
}

func (rs *Rooms) Len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.byID)
}
