package model

// Request names understood by the router.
const (
	RequestJoinRoom = "joinroom"
	RequestClaim    = "claim"
	RequestSeed     = "seed"
	RequestPlay     = "play"
	RequestSendRoom = "sendroom"
	RequestVersion  = "libreninja-version"
)

// Request names of server-generated messages.
const (
	RequestListing       = "listing"
	RequestSomeoneJoined = "someonejoined"
	RequestVideoAdded    = "videoaddedtoroom"
	RequestOfferSDP      = "offerSDP"
)

// Envelope field names. Inbound joinroom/sendroom payloads carry the room id
// lowercased, server-generated messages carry it camel-cased.
const (
	FieldRequest  = "request"
	FieldUUID     = "UUID"
	FieldRoomIDIn = "roomid"
	FieldRoomID   = "roomID"
	FieldStreamID = "streamID"
	FieldTitle    = "title"
	FieldList     = "list"
)

// Message is one decoded control-channel frame. It stays a raw JSON object
// because sendroom and direct routing forward client frames verbatim,
// unknown keys included.
type Message map[string]any

// Str returns the string value under key, reporting false if the key is
// absent or holds a non-string.
func (m Message) Str(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Has reports whether key is present, regardless of its value type.
func (m Message) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// RosterEntry describes one room member inside a listing reply.
// StreamID is present only for members currently publishing.
type RosterEntry struct {
	UUID     string `json:"UUID"`
	StreamID string `json:"streamID,omitempty"`
}

// RoomInfo is the ops-API view of a room.
type RoomInfo struct {
	ID           string        `json:"room_id"`
	Participants []RosterEntry `json:"participants"`
	Director     string        `json:"director,omitempty"`
}
