package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_CreateAndDuplicate(t *testing.T) {
	tbl := NewTable()

	r, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "a", r.Host)
	assert.Equal(t, []string{"a"}, r.Members, "host is always its own first member")
	assert.True(t, tbl.Live("X"))

	_, err = tbl.Create("X", "b", "Bob")
	assert.ErrorIs(t, err, ErrRoomExists)

	// the failed create left the original room untouched
	got, ok := tbl.RoomOf("a")
	require.True(t, ok)
	assert.Equal(t, "a", got.Host)
	assert.Equal(t, []string{"a"}, got.Members)

	_, ok = tbl.RoomOf("b")
	assert.False(t, ok)
}

func TestTable_CreateIsCaseSensitive(t *testing.T) {
	tbl := NewTable()

	_, err := tbl.Create("room", "a", "Alice")
	require.NoError(t, err)
	_, err = tbl.Create("Room", "b", "Bob")
	require.NoError(t, err)

	assert.True(t, tbl.Live("room"))
	assert.True(t, tbl.Live("Room"))
}

func TestTable_JoinMissingRoom(t *testing.T) {
	tbl := NewTable()

	_, _, err := tbl.Join("nope", "a", "Alice")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	rooms, clients := tbl.Counts()
	assert.Zero(t, rooms)
	assert.Zero(t, clients)
}

func TestTable_JoinAppendsInOrder(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)

	r, rejoined, err := tbl.Join("X", "b", "Bob")
	require.NoError(t, err)
	assert.False(t, rejoined)
	assert.Equal(t, []string{"a", "b"}, r.Members)

	r, rejoined, err = tbl.Join("X", "c", "Cleo")
	require.NoError(t, err)
	assert.False(t, rejoined)
	assert.Equal(t, []string{"a", "b", "c"}, r.Members)
	assert.Equal(t, "Cleo", r.DisplayNames["c"])
}

func TestTable_RejoinRefreshesName(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)
	_, _, err = tbl.Join("X", "b", "Bob")
	require.NoError(t, err)

	r, rejoined, err := tbl.Join("X", "b", "Bobby")
	require.NoError(t, err)
	assert.True(t, rejoined)
	assert.Equal(t, []string{"a", "b"}, r.Members, "no duplicate member entry")
	assert.Equal(t, "Bobby", r.DisplayNames["b"])
}

func TestTable_JoinWhileElsewhereRejected(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)
	_, err = tbl.Create("Y", "b", "Bob")
	require.NoError(t, err)

	_, _, err = tbl.Join("X", "b", "Bob")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)
}

func TestTable_LeaveMember(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)
	_, _, err = tbl.Join("X", "b", "Bob")
	require.NoError(t, err)
	_, _, err = tbl.Join("X", "c", "Cleo")
	require.NoError(t, err)

	dep, ok := tbl.Leave("b")
	require.True(t, ok)
	assert.False(t, dep.WasHost)
	assert.False(t, dep.Destroyed)
	assert.Equal(t, "Bob", dep.DisplayName)
	assert.Equal(t, []string{"a", "c"}, dep.Remaining)
	assert.True(t, tbl.Live("X"))

	_, ok = tbl.RoomOf("b")
	assert.False(t, ok)
}

func TestTable_HostLeaveDestroysRoom(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)
	_, _, err = tbl.Join("X", "b", "Bob")
	require.NoError(t, err)

	dep, ok := tbl.Leave("a")
	require.True(t, ok)
	assert.True(t, dep.WasHost)
	assert.True(t, dep.Destroyed)
	assert.Equal(t, []string{"b"}, dep.Remaining)
	assert.False(t, tbl.Live("X"))

	// orphaned members are out of the table too
	_, ok = tbl.RoomOf("b")
	assert.False(t, ok)

	_, _, err = tbl.Join("X", "c", "Cleo")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestTable_LastMemberLeaveDestroysRoom(t *testing.T) {
	tbl := NewTable()
	_, err := tbl.Create("X", "a", "Alice")
	require.NoError(t, err)

	dep, ok := tbl.Leave("a")
	require.True(t, ok)
	assert.True(t, dep.Destroyed)
	assert.Empty(t, dep.Remaining)
	assert.False(t, tbl.Live("X"))

	rooms, clients := tbl.Counts()
	assert.Zero(t, rooms)
	assert.Zero(t, clients)
}

func TestTable_LeaveUnknownClientIsNoop(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Leave("ghost")
	assert.False(t, ok)
}

// A room never survives with zero members, whatever sequence of
// operations ran before.
func TestTable_NoEmptyRooms(t *testing.T) {
	tbl := NewTable()

	steps := []func(){
		func() { tbl.Create("X", "a", "Alice") },
		func() { tbl.Join("X", "b", "Bob") },
		func() { tbl.Leave("b") },
		func() { tbl.Join("X", "b", "Bob") },
		func() { tbl.Leave("a") },
		func() { tbl.Create("Y", "c", "Cleo") },
		func() { tbl.Leave("c") },
		func() { tbl.Leave("c") },
	}
	for i, step := range steps {
		step()
		for _, id := range []string{"X", "Y"} {
			if tbl.Live(id) {
				require.NotEmpty(t, tbl.rooms[id].Members, "step %d: room %s is empty but live", i, id)
			}
		}
	}
}
