package ws

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ihimanshusharma33/video-demo/internal/types"
)

// Registry tracks connected client outboxes and per-room broadcast groups.
// It implements coordinator.Transport. Group membership mirrors the
// coordinator's room table; the registry never decides who belongs where.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]chan types.ServerMessage
	groups  map[string]map[string]struct{}
	log     *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		clients: make(map[string]chan types.ServerMessage),
		groups:  make(map[string]map[string]struct{}),
		log:     log,
	}
}

func (g *Registry) Register(clientID string, outbox chan types.ServerMessage) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[clientID] = outbox
}

// Unregister removes the client and closes its outbox so the connection's
// writer goroutine stops.
func (g *Registry) Unregister(clientID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out, ok := g.clients[clientID]
	if !ok {
		return
	}
	delete(g.clients, clientID)
	close(out)
	for roomID, members := range g.groups {
		delete(members, clientID)
		if len(members) == 0 {
			delete(g.groups, roomID)
		}
	}
}

func (g *Registry) SendTo(clientID, event string, data any) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.deliver(clientID, types.ServerMessage{Event: event, Data: data})
}

func (g *Registry) BroadcastToRoom(roomID, event string, data any, exclude ...string) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	msg := types.ServerMessage{Event: event, Data: data}
	for clientID := range g.groups[roomID] {
		if contains(exclude, clientID) {
			continue
		}
		g.deliver(clientID, msg)
	}
}

func (g *Registry) JoinGroup(clientID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, ok := g.groups[roomID]
	if !ok {
		members = make(map[string]struct{})
		g.groups[roomID] = members
	}
	members[clientID] = struct{}{}
}

func (g *Registry) LeaveGroup(clientID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, ok := g.groups[roomID]
	if !ok {
		return
	}
	delete(members, clientID)
	if len(members) == 0 {
		delete(g.groups, roomID)
	}
}

// Counts reports connected clients and live broadcast groups.
func (g *Registry) Counts() (clients, groups int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients), len(g.groups)
}

// deliver is best-effort: unknown clients and full outboxes drop the
// message. Callers hold at least the read lock.
func (g *Registry) deliver(clientID string, msg types.ServerMessage) {
	out, ok := g.clients[clientID]
	if !ok {
		return
	}
	select {
	case out <- msg:
	default:
		g.log.Warn("outbox full, dropping message",
			zap.String("clientId", clientID),
			zap.String("event", msg.Event))
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
