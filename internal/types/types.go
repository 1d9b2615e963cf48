package types

import "encoding/json"

// ClientMessage is the envelope for every inbound socket message.
type ClientMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is the envelope for every outbound socket message.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client -> server events.
const (
	EventCreateRoom   = "createRoom"
	EventJoinRoom     = "joinRoom"
	EventOffer        = "offer"
	EventAnswer       = "answer"
	EventIceCandidate = "iceCandidate"
	EventChatMessage  = "chatMessage"
)

// Server -> client events.
const (
	EventRoomCreated    = "roomCreated"
	EventRoomJoined     = "roomJoined"
	EventError          = "errorEvent"
	EventUserJoined     = "userJoined"
	EventUserLeft       = "userLeft"
	EventInitiateCall   = "initiateCall"
	EventRoomClosed     = "roomClosed"
	EventReceiveMessage = "receiveMessage"
)

type CreateRoomData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type JoinRoomData struct {
	RoomID      string `json:"roomId"`
	DisplayName string `json:"displayName"`
}

type OfferData struct {
	RoomID string          `json:"roomId"`
	Offer  json.RawMessage `json:"offer"`
}

type AnswerData struct {
	RoomID   string          `json:"roomId,omitempty"`
	TargetID string          `json:"targetId,omitempty"`
	Answer   json.RawMessage `json:"answer"`
}

type IceCandidateData struct {
	RoomID    string          `json:"roomId"`
	Candidate json.RawMessage `json:"candidate"`
}

type ChatMessageData struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type RoomData struct {
	RoomID string `json:"roomId"`
}

type ErrorData struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type UserData struct {
	ClientID    string `json:"clientId"`
	DisplayName string `json:"displayName"`
}

type OfferRelay struct {
	From  string          `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type AnswerRelay struct {
	From   string          `json:"from"`
	Answer json.RawMessage `json:"answer"`
}

type CandidateRelay struct {
	From      string          `json:"from"`
	Candidate json.RawMessage `json:"candidate"`
}

type ReceiveMessageData struct {
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
}
