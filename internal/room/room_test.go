package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair() *Room {
	return &Room{
		ID:           "X",
		Host:         "a",
		Members:      []string{"a", "b"},
		DisplayNames: map[string]string{"a": "Alice", "b": "Bob"},
	}
}

func TestRoom_Other(t *testing.T) {
	r := pair()
	assert.Equal(t, "b", r.Other("a"))
	assert.Equal(t, "a", r.Other("b"))

	solo := &Room{ID: "Y", Host: "a", Members: []string{"a"}}
	assert.Empty(t, solo.Other("a"))
}

func TestRoom_Peers(t *testing.T) {
	r := pair()
	r.Members = append(r.Members, "c")
	assert.Equal(t, []string{"b", "c"}, r.Peers("a"))
	assert.Equal(t, []string{"a", "b"}, r.Peers("c"))
}

func TestOfferTarget_PeerPair(t *testing.T) {
	r := pair()

	target, err := r.OfferTarget("a", PolicyPeerPair)
	require.NoError(t, err)
	assert.Equal(t, "b", target)

	target, err = r.OfferTarget("b", PolicyPeerPair)
	require.NoError(t, err)
	assert.Equal(t, "a", target, "an offer never routes back to its sender")

	solo := &Room{ID: "Y", Host: "a", Members: []string{"a"}}
	target, err = solo.OfferTarget("a", PolicyPeerPair)
	require.NoError(t, err)
	assert.Empty(t, target, "solo room: drop silently")
}

func TestOfferTarget_HostCentric(t *testing.T) {
	r := pair()

	target, err := r.OfferTarget("b", PolicyHostCentric)
	require.NoError(t, err)
	assert.Equal(t, "a", target)

	_, err = r.OfferTarget("a", PolicyHostCentric)
	assert.ErrorIs(t, err, ErrNotAuthorized, "the host never offers to itself")
}

func TestAnswerTarget_PeerPair(t *testing.T) {
	r := pair()

	// no explicit target: route like an offer
	target, err := r.AnswerTarget("b", "", PolicyPeerPair)
	require.NoError(t, err)
	assert.Equal(t, "a", target)

	// explicit target must be a member
	target, err = r.AnswerTarget("a", "b", PolicyPeerPair)
	require.NoError(t, err)
	assert.Equal(t, "b", target)

	_, err = r.AnswerTarget("a", "stranger", PolicyPeerPair)
	assert.ErrorIs(t, err, ErrTargetNotFound)

	_, err = r.AnswerTarget("a", "a", PolicyPeerPair)
	assert.ErrorIs(t, err, ErrTargetNotFound, "self-target is never valid")
}

func TestAnswerTarget_HostCentric(t *testing.T) {
	r := pair()

	target, err := r.AnswerTarget("a", "b", PolicyHostCentric)
	require.NoError(t, err)
	assert.Equal(t, "b", target)

	_, err = r.AnswerTarget("a", "", PolicyHostCentric)
	assert.ErrorIs(t, err, ErrTargetNotFound, "host policy requires an explicit target")
}
