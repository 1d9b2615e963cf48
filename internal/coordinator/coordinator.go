package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ihimanshusharma33/video-demo/internal/room"
	"github.com/ihimanshusharma33/video-demo/internal/types"
)

// Transport delivers coordinator output to connected clients. Both
// operations are best-effort: a gone client simply misses the message.
type Transport interface {
	SendTo(clientID, event string, data any)
	BroadcastToRoom(roomID, event string, data any, exclude ...string)
	// Group membership mirrors the coordinator's room table; the table is
	// the source of truth.
	JoinGroup(clientID, roomID string)
	LeaveGroup(clientID, roomID string)
}

type Msg interface{ isCoordinatorMsg() }

type Connect struct{ ClientID string }

func (Connect) isCoordinatorMsg() {}

type Disconnect struct{ ClientID string }

func (Disconnect) isCoordinatorMsg() {}

type FromClient struct {
	ClientID string
	Msg      types.ClientMessage
}

func (FromClient) isCoordinatorMsg() {}

type LiveCheck struct {
	RoomID string
	Reply  chan bool
}

func (LiveCheck) isCoordinatorMsg() {}

type GetState struct{ Reply chan View }

func (GetState) isCoordinatorMsg() {}

type Shutdown struct{}

func (Shutdown) isCoordinatorMsg() {}

type View struct {
	Rooms   int
	Clients int
}

// Coordinator owns the room table. All commands arrive on one inbox and
// are applied one at a time, so no operation ever observes a half-updated
// table.
type Coordinator struct {
	inbox     chan Msg
	table     *room.Table
	policy    room.Policy
	transport Transport
	log       *zap.Logger
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(parent context.Context, transport Transport, policy room.Policy, log *zap.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(parent)
	c := &Coordinator{
		inbox:     make(chan Msg, 64),
		table:     room.NewTable(),
		policy:    policy,
		transport: transport,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
	go c.loop()
	return c
}

func (c *Coordinator) Inbox() chan<- Msg { return c.inbox }

func (c *Coordinator) loop() {
	for {
		select {
		case <-c.ctx.Done():
			return

		case m := <-c.inbox:
			switch msg := m.(type) {
			case Connect:
				c.log.Debug("client connected", zap.String("clientId", msg.ClientID))

			case Disconnect:
				c.handleDisconnect(msg.ClientID)

			case FromClient:
				c.handleEvent(msg.ClientID, msg.Msg)

			case LiveCheck:
				msg.Reply <- c.table.Live(msg.RoomID)

			case GetState:
				rooms, clients := c.table.Counts()
				msg.Reply <- View{Rooms: rooms, Clients: clients}

			case Shutdown:
				c.cancel()
				return
			}
		}
	}
}

func (c *Coordinator) handleEvent(clientID string, msg types.ClientMessage) {
	switch msg.Event {
	case types.EventCreateRoom:
		var d types.CreateRoomData
		if !c.decode(clientID, msg.Data, &d) || !c.require(clientID, d.RoomID != "", "missing roomId") {
			return
		}
		c.createRoom(clientID, d)

	case types.EventJoinRoom:
		var d types.JoinRoomData
		if !c.decode(clientID, msg.Data, &d) || !c.require(clientID, d.RoomID != "", "missing roomId") {
			return
		}
		c.joinRoom(clientID, d)

	case types.EventOffer:
		var d types.OfferData
		if !c.decode(clientID, msg.Data, &d) {
			return
		}
		c.relayOffer(clientID, d)

	case types.EventAnswer:
		var d types.AnswerData
		if !c.decode(clientID, msg.Data, &d) {
			return
		}
		c.relayAnswer(clientID, d)

	case types.EventIceCandidate:
		var d types.IceCandidateData
		if !c.decode(clientID, msg.Data, &d) {
			return
		}
		c.relayCandidate(clientID, d)

	case types.EventChatMessage:
		var d types.ChatMessageData
		if !c.decode(clientID, msg.Data, &d) {
			return
		}
		c.relayChat(clientID, d)

	default:
		c.log.Debug("unknown event", zap.String("clientId", clientID), zap.String("event", msg.Event))
	}
}

func (c *Coordinator) createRoom(clientID string, d types.CreateRoomData) {
	if c.table.Live(d.RoomID) {
		c.sendError(clientID, room.ErrRoomExists)
		return
	}

	// A client may hold at most one membership; creating a room while in
	// another one leaves the old room first.
	c.detach(clientID)

	if _, err := c.table.Create(d.RoomID, clientID, d.DisplayName); err != nil {
		c.sendError(clientID, err)
		return
	}
	c.transport.JoinGroup(clientID, d.RoomID)
	c.transport.SendTo(clientID, types.EventRoomCreated, types.RoomData{RoomID: d.RoomID})
	c.log.Info("room created",
		zap.String("roomId", d.RoomID),
		zap.String("clientId", clientID))
}

func (c *Coordinator) joinRoom(clientID string, d types.JoinRoomData) {
	if !c.table.Live(d.RoomID) {
		c.sendError(clientID, room.ErrRoomNotFound)
		return
	}

	if r, ok := c.table.RoomOf(clientID); ok && r.ID == d.RoomID {
		// Re-join of the same room: refresh the name, ack again, notify no one.
		_, _, _ = c.table.Join(d.RoomID, clientID, d.DisplayName)
		c.transport.SendTo(clientID, types.EventRoomJoined, types.RoomData{RoomID: d.RoomID})
		return
	}
	c.detach(clientID)

	r, _, err := c.table.Join(d.RoomID, clientID, d.DisplayName)
	if err != nil {
		c.sendError(clientID, err)
		return
	}
	c.transport.SendTo(clientID, types.EventRoomJoined, types.RoomData{RoomID: d.RoomID})
	c.transport.BroadcastToRoom(d.RoomID, types.EventUserJoined,
		types.UserData{ClientID: clientID, DisplayName: d.DisplayName}, clientID)
	c.transport.JoinGroup(clientID, d.RoomID)

	// The earliest joiner initiates the offer/answer exchange once a
	// second participant is present.
	if len(r.Members) == 2 {
		c.transport.SendTo(r.Members[0], types.EventInitiateCall, nil)
	}
	c.log.Info("client joined room",
		zap.String("roomId", d.RoomID),
		zap.String("clientId", clientID),
		zap.Int("members", len(r.Members)))
}

func (c *Coordinator) relayOffer(clientID string, d types.OfferData) {
	r, ok := c.memberRoom(clientID, d.RoomID)
	if !ok {
		return
	}
	target, err := r.OfferTarget(clientID, c.policy)
	if err != nil {
		c.sendError(clientID, err)
		return
	}
	if target == "" {
		return // solo room, nothing to deliver
	}
	c.transport.SendTo(target, types.EventOffer, types.OfferRelay{From: clientID, Offer: d.Offer})
}

func (c *Coordinator) relayAnswer(clientID string, d types.AnswerData) {
	r, ok := c.memberRoom(clientID, d.RoomID)
	if !ok {
		return
	}
	target, err := r.AnswerTarget(clientID, d.TargetID, c.policy)
	if err != nil {
		c.sendError(clientID, err)
		return
	}
	if target == "" {
		return
	}
	c.transport.SendTo(target, types.EventAnswer, types.AnswerRelay{From: clientID, Answer: d.Answer})
}

func (c *Coordinator) relayCandidate(clientID string, d types.IceCandidateData) {
	r, ok := c.memberRoom(clientID, d.RoomID)
	if !ok {
		return
	}
	c.transport.BroadcastToRoom(r.ID, types.EventIceCandidate,
		types.CandidateRelay{From: clientID, Candidate: d.Candidate}, clientID)
}

func (c *Coordinator) relayChat(clientID string, d types.ChatMessageData) {
	r, ok := c.memberRoom(clientID, d.RoomID)
	if !ok {
		return
	}
	// Chat echoes back to the sender, unlike the signaling relays.
	c.transport.BroadcastToRoom(r.ID, types.EventReceiveMessage,
		types.ReceiveMessageData{Message: d.Message, SenderID: clientID})
}

func (c *Coordinator) handleDisconnect(clientID string) {
	if c.detach(clientID) {
		c.log.Info("client disconnected", zap.String("clientId", clientID))
	}
}

// detach removes clientID from whichever room holds it, notifying the rest
// of the room and tearing the room down when the table says so. Safe to
// call for clients that are in no room.
func (c *Coordinator) detach(clientID string) bool {
	dep, ok := c.table.Leave(clientID)
	if !ok {
		return false
	}
	roomID := dep.Room.ID
	c.transport.LeaveGroup(clientID, roomID)

	switch {
	case dep.WasHost && len(dep.Remaining) > 0:
		c.transport.BroadcastToRoom(roomID, types.EventRoomClosed, types.RoomData{RoomID: roomID})
		for _, id := range dep.Remaining {
			c.transport.LeaveGroup(id, roomID)
		}
		c.log.Info("room closed", zap.String("roomId", roomID), zap.String("host", clientID))

	case dep.Destroyed:
		c.log.Info("room removed", zap.String("roomId", roomID))

	default:
		c.transport.BroadcastToRoom(roomID, types.EventUserLeft,
			types.UserData{ClientID: clientID, DisplayName: dep.DisplayName})
	}
	return true
}

// memberRoom resolves the room a relay refers to. An explicit roomId must
// be live and must contain the sender; with no roomId the sender's own
// room is used.
func (c *Coordinator) memberRoom(clientID, roomID string) (*room.Room, bool) {
	r, ok := c.table.RoomOf(clientID)
	if !ok {
		c.sendError(clientID, room.ErrRoomNotFound)
		return nil, false
	}
	if roomID != "" && r.ID != roomID {
		if c.table.Live(roomID) {
			c.sendError(clientID, room.ErrNotAuthorized)
		} else {
			c.sendError(clientID, room.ErrRoomNotFound)
		}
		return nil, false
	}
	return r, true
}

func (c *Coordinator) decode(clientID string, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		c.sendErrorMsg(clientID, "missing payload", http.StatusBadRequest)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.sendErrorMsg(clientID, "malformed payload", http.StatusBadRequest)
		return false
	}
	return true
}

func (c *Coordinator) require(clientID string, ok bool, msg string) bool {
	if !ok {
		c.sendErrorMsg(clientID, msg, http.StatusBadRequest)
	}
	return ok
}

func (c *Coordinator) sendError(clientID string, err error) {
	c.sendErrorMsg(clientID, err.Error(), statusOf(err))
}

func (c *Coordinator) sendErrorMsg(clientID, msg string, status int) {
	c.transport.SendTo(clientID, types.EventError, types.ErrorData{Message: msg, StatusCode: status})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, room.ErrRoomExists):
		return http.StatusConflict
	case errors.Is(err, room.ErrRoomNotFound), errors.Is(err, room.ErrTargetNotFound):
		return http.StatusNotFound
	case errors.Is(err, room.ErrNotAuthorized):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
