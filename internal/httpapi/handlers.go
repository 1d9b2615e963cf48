package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/ihimanshusharma33/video-demo/internal/coordinator"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// MintRoomID returns a fresh room id that is not currently live. The
// client still has to claim it with a createRoom event over the socket.
func MintRoomID(c *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			candidate, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate room id", http.StatusInternalServerError)
				return
			}
			reply := make(chan bool, 1)
			c.Inbox() <- coordinator.LiveCheck{RoomID: candidate, Reply: reply}
			if !<-reply {
				code = candidate
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			RoomID string `json:"roomId"`
		}{RoomID: code})
	}
}

func Stats(c *coordinator.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan coordinator.View, 1)
		c.Inbox() <- coordinator.GetState{Reply: reply}
		view := <-reply

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Rooms   int `json:"rooms"`
			Clients int `json:"clients"`
		}{Rooms: view.Rooms, Clients: view.Clients})
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
