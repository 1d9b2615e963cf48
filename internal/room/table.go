package room

// Table is the full room table. It is not safe for concurrent use; the
// coordinator owns it and applies one command at a time.
type Table struct {
	rooms    map[string]*Room
	byClient map[string]string // clientID -> roomID
}

// Departure reports what happened when a client left its room.
type Departure struct {
	Room        *Room
	WasHost     bool
	Destroyed   bool
	DisplayName string
	Remaining   []string // members still present after the departure
}

func NewTable() *Table {
	return &Table{
		rooms:    make(map[string]*Room),
		byClient: make(map[string]string),
	}
}

func (t *Table) Live(roomID string) bool {
	_, ok := t.rooms[roomID]
	return ok
}

func (t *Table) RoomOf(clientID string) (*Room, bool) {
	id, ok := t.byClient[clientID]
	if !ok {
		return nil, false
	}
	r, ok := t.rooms[id]
	return r, ok
}

// Create makes a new room hosted by clientID. The host is its first
// member. The caller must detach the client from any previous room first.
func (t *Table) Create(roomID, clientID, displayName string) (*Room, error) {
	if _, ok := t.rooms[roomID]; ok {
		return nil, ErrRoomExists
	}
	if _, ok := t.byClient[clientID]; ok {
		return nil, ErrAlreadyInRoom
	}
	r := &Room{
		ID:           roomID,
		Host:         clientID,
		Members:      []string{clientID},
		DisplayNames: map[string]string{clientID: displayName},
	}
	t.rooms[roomID] = r
	t.byClient[clientID] = roomID
	return r, nil
}

// Join appends clientID to an existing room. Joining a room the client is
// already in refreshes the display name and reports rejoined=true with no
// membership change.
func (t *Table) Join(roomID, clientID, displayName string) (r *Room, rejoined bool, err error) {
	r, ok := t.rooms[roomID]
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	if r.Has(clientID) {
		r.DisplayNames[clientID] = displayName
		return r, true, nil
	}
	if _, ok := t.byClient[clientID]; ok {
		return nil, false, ErrAlreadyInRoom
	}
	r.Members = append(r.Members, clientID)
	r.DisplayNames[clientID] = displayName
	t.byClient[clientID] = roomID
	return r, false, nil
}

// Leave detaches clientID from whichever room holds it. The room is
// destroyed when its host leaves or when the last member leaves; a room
// never survives with zero members.
func (t *Table) Leave(clientID string) (Departure, bool) {
	r, ok := t.RoomOf(clientID)
	if !ok {
		delete(t.byClient, clientID) // stale index entry, if any
		return Departure{}, false
	}

	dep := Departure{
		Room:        r,
		WasHost:     clientID == r.Host,
		DisplayName: r.DisplayNames[clientID],
	}
	r.remove(clientID)
	delete(t.byClient, clientID)
	dep.Remaining = append([]string(nil), r.Members...)

	if dep.WasHost || len(r.Members) == 0 {
		delete(t.rooms, r.ID)
		for _, id := range r.Members {
			delete(t.byClient, id)
		}
		dep.Destroyed = true
	}
	return dep, true
}

// Counts reports how many rooms are live and how many clients are joined.
func (t *Table) Counts() (rooms, clients int) {
	return len(t.rooms), len(t.byClient)
}
