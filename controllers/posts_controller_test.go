package controllers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"Scribbler/models"

	"github.com/stretchr/testify/assert"
)

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)

	userID, token := ts.registerAndLogin(t, "alice", "alice@example.com")

	w := ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"contents": "  my first scribble  ",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)["response"].(map[string]interface{})
	assert.Equal(t, "my first scribble", response["contents"])
	assert.Equal(t, float64(userID), response["owner_id"])
	assert.Equal(t, float64(0), response["likes"])
	assert.NotEmpty(t, response["public_id"])
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t)

	_, token := ts.registerAndLogin(t, "alice", "alice@example.com")

	// Blank contents
	w := ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"contents": "   ",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// One rune over the limit
	w = ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"contents": strings.Repeat("a", models.MaxPostLength+1),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Exactly at the limit is fine
	w = ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"contents": strings.Repeat("a", models.MaxPostLength),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreatePostIgnoresClientFields(t *testing.T) {
	ts := newTestServer(t)

	_, token := ts.registerAndLogin(t, "alice", "alice@example.com")

	// A client must not be able to pick its own id, like count, or creation
	// time; a future created_at would pin the post above every feed page.
	w := ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]interface{}{
		"contents":   "honest scribble",
		"id":         999,
		"likes":      42,
		"created_at": "2099-01-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)["response"].(map[string]interface{})
	assert.NotEqual(t, float64(999), response["id"])
	assert.Equal(t, float64(0), response["likes"])

	var post models.Post
	assert.NoError(t, ts.DB.Where("id = ?", uint(response["id"].(float64))).Take(&post).Error)
	assert.Equal(t, int64(0), post.Likes)
	assert.WithinDuration(t, time.Now(), post.CreatedAt, time.Minute)
}

func TestCreatePostUnauthenticated(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/posts", "", map[string]string{
		"contents": "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePost(t *testing.T) {
	ts := newTestServer(t)

	_, token := ts.registerAndLogin(t, "alice", "alice@example.com")
	postID := ts.createPost(t, token, "first draft")

	w := ts.do(t, http.MethodPatch, "/api/v1/posts/"+itoa(postID), token, map[string]string{
		"contents": "second draft",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)["response"].(map[string]interface{})
	assert.Equal(t, "second draft", response["contents"])

	var post models.Post
	assert.NoError(t, ts.DB.Where("id = ?", postID).Take(&post).Error)
	assert.Equal(t, "second draft", post.Contents)
}

func TestUpdatePostNotOwner(t *testing.T) {
	ts := newTestServer(t)

	_, tokenA := ts.registerAndLogin(t, "alice", "alice@example.com")
	_, tokenB := ts.registerAndLogin(t, "bob", "bob@example.com")

	postID := ts.createPost(t, tokenA, "original")

	w := ts.do(t, http.MethodPatch, "/api/v1/posts/"+itoa(postID), tokenB, map[string]string{
		"contents": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var post models.Post
	assert.NoError(t, ts.DB.Where("id = ?", postID).Take(&post).Error)
	assert.Equal(t, "original", post.Contents)
}

func TestUpdatePostMissing(t *testing.T) {
	ts := newTestServer(t)

	_, token := ts.registerAndLogin(t, "alice", "alice@example.com")

	w := ts.do(t, http.MethodPatch, "/api/v1/posts/999", token, map[string]string{
		"contents": "ghost",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPatch, "/api/v1/posts/abc", token, map[string]string{
		"contents": "ghost",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUserPosts(t *testing.T) {
	ts := newTestServer(t)

	userID, token := ts.registerAndLogin(t, "alice", "alice@example.com")
	ts.createPost(t, token, "older")
	ts.createPost(t, token, "newer")

	w := ts.do(t, http.MethodGet, "/api/v1/users/"+itoa(userID)+"/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	posts := decodeBody(t, w)["response"].([]interface{})
	assert.Len(t, posts, 2)

	// Username works as the identifier too
	w = ts.do(t, http.MethodGet, "/api/v1/users/alice/posts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["response"].([]interface{}), 2)

	w = ts.do(t, http.MethodGet, "/api/v1/users/ghost/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
