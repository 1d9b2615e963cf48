package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ihimanshusharma33/video-demo/internal/coordinator"
	"github.com/ihimanshusharma33/video-demo/internal/types"
)

const (
	writeTimeout = 3 * time.Second
	outboxSize   = 32
)

// Handler upgrades the request to the signaling socket and runs the
// session until the client goes away. Every session gets a fresh client
// id; the id is never reused while the connection lives.
func Handler(reg *Registry, coord *coordinator.Coordinator, originPatterns []string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.New().String()
		out := make(chan types.ServerMessage, outboxSize)

		reg.Register(clientID, out)
		coord.Inbox() <- coordinator.Connect{ClientID: clientID}
		defer func() {
			// Unregister first so nothing the disconnect triggers is
			// delivered back to this session.
			reg.Unregister(clientID)
			coord.Inbox() <- coordinator.Disconnect{ClientID: clientID}
		}()

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range out {
				payload, err := json.Marshal(msg)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				// Abrupt loss; the deferred Disconnect cleans up.
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				reg.SendTo(clientID, types.EventError, types.ErrorData{
					Message:    "bad json",
					StatusCode: http.StatusBadRequest,
				})
				continue
			}
			coord.Inbox() <- coordinator.FromClient{ClientID: clientID, Msg: cm}
		}
	}
}
