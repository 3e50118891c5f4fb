package service

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/libreninja/server/hub"
	"github.com/libreninja/server/metrics"
	"github.com/libreninja/server/model"
	"github.com/libreninja/server/registry"
	"github.com/rs/zerolog"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrNotInRoom    = errors.New("participant is not in a room")
	ErrMissingField = errors.New("missing message field")
)

type handlerFunc func(msg model.Message, sessionID string) (model.Message, error)

type (
	Config struct {
		Hub             *hub.Hub
		Participants    *registry.Participants
		Rooms           *registry.Rooms
		Seeds           *registry.Seeds
		AllowVersionCmd bool
		Logger          *zerolog.Logger
	}

	// Service routes decoded control messages to their named handlers or to
	// direct session delivery, and unwinds session state on disconnect.
	Service struct {
		hub             *hub.Hub
		participants    *registry.Participants
		rooms           *registry.Rooms
		seeds           *registry.Seeds
		allowVersionCmd bool
		handlers        map[string]handlerFunc
		logger          zerolog.Logger
	}
)

func NewService(cfg Config) *Service {
	svc := &Service{
		hub:             cfg.Hub,
		participants:    cfg.Participants,
		rooms:           cfg.Rooms,
		seeds:           cfg.Seeds,
		allowVersionCmd: cfg.AllowVersionCmd,
		logger:          cfg.Logger.With().Str("component", "service").Logger(),
	}
	svc.handlers = map[string]handlerFunc{
		model.RequestJoinRoom: svc.joinRoom,
		model.RequestClaim:    svc.claim,
		model.RequestSeed:     svc.seed,
		model.RequestPlay:     svc.play,
		model.RequestSendRoom: svc.sendRoom,
		model.RequestVersion:  svc.version,
	}
	return svc
}

// Route dispatches one decoded message from sessionID and returns the reply
// destined for the originating connection, if any. A message carrying a
// request field goes to the named handler; a message carrying only a UUID is
// forwarded verbatim to that session with the UUID rewritten to the sender,
// so the recipient can identify who sent it. Handler failures are logged and
// produce no reply; the connection stays open.
func (svc *Service) Route(msg model.Message, sessionID string) model.Message {
	if msg.Has(model.FieldRequest) {
		request, _ := msg.Str(model.FieldRequest)
		handler, known := svc.handlers[request]
		if !known {
			svc.logger.Debug().
				Str("sessionID", sessionID).
				Str("request", request).
				Msg("unknown request ignored")
			metrics.RoutedMessages.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return nil
		}
		reply, err := handler(msg, sessionID)
		if err != nil {
			svc.logger.Warn().Err(err).
				Str("sessionID", sessionID).
				Str("message", spew.Sdump(msg)).
				Msg("handler failed")
			metrics.RoutedMessages.WithLabelValues(metrics.OutcomeFailed).Inc()
			return nil
		}
		metrics.RoutedMessages.WithLabelValues(metrics.OutcomeHandled).Inc()
		return reply
	}

	if target, ok := msg.Str(model.FieldUUID); ok {
		msg[model.FieldUUID] = sessionID
		if err := svc.hub.Send(target, msg); err != nil {
			svc.logger.Debug().Err(err).
				Str("sessionID", sessionID).
				Str("target", target).
				Msg("direct delivery failed")
		}
		metrics.RoutedMessages.WithLabelValues(metrics.OutcomeForwarded).Inc()
		return nil
	}

	svc.logger.Warn().
		Str("sessionID", sessionID).
		Str("message", spew.Sdump(msg)).
		Msg("invalid message")
	metrics.RoutedMessages.WithLabelValues(metrics.OutcomeInvalid).Inc()
	return nil
}

// Cleanup unwinds all state owned by a disconnected session: its hub entry,
// its room membership (and directorship, if held) and its participant record.
// A session that never joined anything cleans up without error.
func (svc *Service) Cleanup(sessionID string) {
	svc.hub.Remove(sessionID)

	p, ok := svc.participants.Get(sessionID)
	if !ok {
		return
	}
	if roomID := p.Room(); roomID != "" {
		if room, found := svc.rooms.Get(roomID); found {
			room.Remove(sessionID)
		}
		p.SetRoom("")
	}
	svc.participants.Remove(sessionID)
	svc.logger.Debug().Str("sessionID", sessionID).Msg("session state cleaned up")
}

// RoomInfo returns the ops-API view of a room.
func (svc *Service) RoomInfo(roomID string) (*model.RoomInfo, error) {
	room, ok := svc.rooms.Get(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	info := &model.RoomInfo{
		ID:           room.ID(),
		Participants: make([]model.RosterEntry, 0, room.Len()),
	}
	for _, member := range room.Snapshot() {
		info.Participants = append(info.Participants, member.Roster())
	}
	if director := room.Director(); director != nil {
		info.Director = director.UUID()
	}
	return info, nil
}
