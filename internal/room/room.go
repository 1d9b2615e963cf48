package room

import "errors"

var ErrRoomExists = errors.New("room already exists")
var ErrRoomNotFound = errors.New("room not found")
var ErrTargetNotFound = errors.New("target client not found")
var ErrNotAuthorized = errors.New("not authorized")
var ErrAlreadyInRoom = errors.New("already in a room")

// Policy selects how signaling messages are routed inside a room.
type Policy string

const (
	// PolicyPeerPair relays offers and answers to "the other member":
	// whichever single member of the room is not the sender.
	PolicyPeerPair Policy = "peer"

	// PolicyHostCentric relays offers to the room's host and answers to an
	// explicitly named target. The host never offers to itself.
	PolicyHostCentric Policy = "host"
)

type Room struct {
	ID           string
	Host         string
	Members      []string // insertion order, host first
	DisplayNames map[string]string
}

func (r *Room) Has(clientID string) bool {
	for _, id := range r.Members {
		if id == clientID {
			return true
		}
	}
	return false
}

// Other returns the earliest member that is not clientID, or "" if the
// client is alone in the room.
func (r *Room) Other(clientID string) string {
	for _, id := range r.Members {
		if id != clientID {
			return id
		}
	}
	return ""
}

// Peers returns every member except clientID, preserving insertion order.
func (r *Room) Peers(clientID string) []string {
	peers := make([]string, 0, len(r.Members))
	for _, id := range r.Members {
		if id != clientID {
			peers = append(peers, id)
		}
	}
	return peers
}

// OfferTarget resolves who should receive an offer sent by senderID.
// An empty target with a nil error means "no recipient, drop silently".
func (r *Room) OfferTarget(senderID string, p Policy) (string, error) {
	if p == PolicyHostCentric {
		if senderID == r.Host {
			return "", ErrNotAuthorized
		}
		return r.Host, nil
	}
	return r.Other(senderID), nil
}

// AnswerTarget resolves who should receive an answer sent by senderID.
// targetID may be empty under the peer-pair policy, in which case the
// answer routes to the other member like an offer. A named target must be
// a member of the room and must not be the sender.
func (r *Room) AnswerTarget(senderID, targetID string, p Policy) (string, error) {
	if targetID == "" {
		if p == PolicyHostCentric {
			return "", ErrTargetNotFound
		}
		return r.Other(senderID), nil
	}
	if targetID == senderID || !r.Has(targetID) {
		return "", ErrTargetNotFound
	}
	return targetID, nil
}

func (r *Room) remove(clientID string) {
	for i, id := range r.Members {
		if id == clientID {
			r.Members = append(r.Members[:i], r.Members[i+1:]...)
			break
		}
	}
	delete(r.DisplayNames, clientID)
}
