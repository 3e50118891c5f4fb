package registry

import "sync"

// Seeds maps published stream ids to their publishing participants. A
// participant holds at most one active seed entry; republishing under a new
// stream id drops the previous entry. The registry lock is taken before the
// participant lock, matching the global lock order.
type Seeds struct {
	mu       sync.Mutex
	byStream map[string]*Participant
}

func NewSeeds() *Seeds {
	return &Seeds{byStream: make(map[string]*Participant)}
}

// Put registers p as the publisher of streamID and records the stream id on
// the participant.
func (s *Seeds) Put(streamID string, p *Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev := p.StreamID(); prev != "" && prev != streamID {
		delete(s.byStream, prev)
	}
	s.byStream[streamID] = p
	p.SetStreamID(streamID)
}

// Get returns the participant currently publishing streamID.
func (s *Seeds) Get(streamID string) (*Participant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byStream[streamID]
	return p, ok
}
