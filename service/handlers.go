package service

import (
	"fmt"

	"github.com/libreninja/server/model"
	"github.com/libreninja/server/registry"
)

const (
	softwareName    = "LibreNinja Server"
	softwareVersion = "0.01 Alpha"
	ninjaLevel      = "6"
)

// joinRoom puts the sender into the requested room, creating the room if it
// is unseen. Current members are notified before the sender is appended, so
// the newcomer never receives its own join announcement. The reply lists the
// members present before the join.
func (svc *Service) joinRoom(msg model.Message, sessionID string) (model.Message, error) {
	roomID, ok := msg.Str(model.FieldRoomIDIn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldRoomIDIn)
	}

	room, existed := svc.rooms.GetOrCreate(roomID)
	list := make([]model.RosterEntry, 0)
	if existed {
		members := room.Snapshot()
		ids := make([]string, 0, len(members))
		for _, member := range members {
			list = append(list, member.Roster())
			ids = append(ids, member.UUID())
		}
		svc.hub.Broadcast(ids, model.Message{
			model.FieldRequest: model.RequestSomeoneJoined,
			model.FieldRoomID:  roomID,
			model.FieldUUID:    sessionID,
		}, sessionID)
	}

	p := svc.participants.GetOrCreate(sessionID)
	if prev := p.Room(); prev != "" && prev != roomID {
		// a participant belongs to at most one room
		if prevRoom, found := svc.rooms.Get(prev); found {
			prevRoom.Remove(sessionID)
		}
	}
	p.SetRoom(roomID)
	room.Add(p)

	svc.logger.Debug().
		Str("sessionID", sessionID).
		Str("roomID", roomID).
		Msg("participant joined room")

	return model.Message{
		model.FieldRequest: model.RequestListing,
		model.FieldList:    list,
		model.FieldRoomID:  roomID,
	}, nil
}

// claim records the sender as the director of its current room. Senders
// without a participant record, without a room, or not currently a member of
// that room are ignored.
func (svc *Service) claim(_ model.Message, sessionID string) (model.Message, error) {
	p, ok := svc.participants.Get(sessionID)
	if !ok {
		return nil, nil
	}
	roomID := p.Room()
	if roomID == "" {
		return nil, nil
	}
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return nil, nil
	}
	if !room.Claim(p) {
		svc.logger.Debug().
			Str("sessionID", sessionID).
			Str("roomID", roomID).
			Msg("claim from non-member ignored")
		return nil, nil
	}
	svc.logger.Debug().
		Str("sessionID", sessionID).
		Str("roomID", roomID).
		Msg("director claimed")
	return nil, nil
}

// seed registers the sender as the publisher of a stream and announces the
// stream to the other members of the sender's room.
func (svc *Service) seed(msg model.Message, sessionID string) (model.Message, error) {
	title, ok := msg.Str(model.FieldTitle)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldTitle)
	}
	streamID, ok := msg.Str(model.FieldStreamID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldStreamID)
	}

	p := svc.participants.GetOrCreate(sessionID)
	p.SetTitle(title)
	svc.seeds.Put(streamID, p)

	roomID := p.Room()
	if roomID == "" {
		return nil, ErrNotInRoom
	}
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	svc.hub.Broadcast(sessionIDs(room.Snapshot()), model.Message{
		model.FieldRequest:  model.RequestVideoAdded,
		model.FieldRoomID:   roomID,
		model.FieldUUID:     sessionID,
		model.FieldStreamID: streamID,
	}, sessionID)
	return nil, nil
}

// play asks the publisher of a stream for an SDP offer, addressed with the
// requester's session id. An unknown stream id produces nothing.
func (svc *Service) play(msg model.Message, sessionID string) (model.Message, error) {
	streamID, ok := msg.Str(model.FieldStreamID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldStreamID)
	}
	publisher, ok := svc.seeds.Get(streamID)
	if !ok {
		svc.logger.Debug().Str("streamID", streamID).Msg("no publisher for stream")
		return nil, nil
	}
	if err := svc.hub.Send(publisher.UUID(), model.Message{
		model.FieldRequest: model.RequestOfferSDP,
		model.FieldUUID:    sessionID,
	}); err != nil {
		svc.logger.Debug().Err(err).
			Str("streamID", streamID).
			Str("publisher", publisher.UUID()).
			Msg("offer request not delivered")
	}
	return nil, nil
}

// sendRoom forwards the incoming message verbatim to every other member of
// the named room.
func (svc *Service) sendRoom(msg model.Message, sessionID string) (model.Message, error) {
	roomID, ok := msg.Str(model.FieldRoomIDIn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, model.FieldRoomIDIn)
	}
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	svc.hub.Broadcast(sessionIDs(room.Snapshot()), msg, sessionID)
	return nil, nil
}

// version identifies the server software, if the deployment permits it.
func (svc *Service) version(_ model.Message, _ string) (model.Message, error) {
	if !svc.allowVersionCmd {
		return nil, nil
	}
	return model.Message{
		"software":   softwareName,
		"version":    softwareVersion,
		"ninjalevel": ninjaLevel,
	}, nil
}

func sessionIDs(participants []*registry.Participant) []string {
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UUID())
	}
	return ids
}
