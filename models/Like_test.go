package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleLikeSequence(t *testing.T) {
	db := newTestDB(t)
	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	post := makePost(t, db, alice.ID, "hello")

	// like, like again (untoggle), like once more
	expected := []struct {
		liked bool
		total int64
	}{
		{true, 1},
		{false, 0},
		{true, 1},
	}
	for i, want := range expected {
		result, err := ToggleLike(db, bob.ID, post.ID)
		assert.NoError(t, err)
		assert.Equal(t, want.liked, result.IsNowLiked, "toggle %d", i+1)
		assert.Equal(t, want.total, result.TotalLikes, "toggle %d", i+1)
	}

	// Counter is recomputed from the like table, never drifted
	var stored Post
	assert.NoError(t, db.Take(&stored, post.ID).Error)
	assert.Equal(t, int64(1), stored.Likes)

	count, err := CountPostLikes(db, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, stored.Likes, count)
}

func TestToggleLikeTwoUsers(t *testing.T) {
	db := newTestDB(t)
	alice := makeUser(t, db, "alice")
	bob := makeUser(t, db, "bob")
	post := makePost(t, db, alice.ID, "hello")

	resultA, err := ToggleLike(db, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), resultA.TotalLikes)

	resultB, err := ToggleLike(db, bob.ID, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), resultB.TotalLikes)

	// Bob untoggling does not touch Alice's like
	resultB, err = ToggleLike(db, bob.ID, post.ID)
	assert.NoError(t, err)
	assert.False(t, resultB.IsNowLiked)
	assert.Equal(t, int64(1), resultB.TotalLikes)

	liked, err := HasLiked(db, alice.ID, post.ID)
	assert.NoError(t, err)
	assert.True(t, liked)
}
