package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createDiscussion(t *testing.T, userID, title string, tags ...string) map[string]any {
	t.Helper()
	if tags == nil {
		tags = []string{}
	}
	w := e.do(t, http.MethodPost, "/api/discussions/create", "", gin.H{
		"title":   title,
		"content": "content of " + title,
		"tags":    tags,
		"userId":  userID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)
}

func TestCreateDiscussion(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")

	t.Run("Tags are processed and author populated", func(t *testing.T) {
		d := env.createDiscussion(t, ada.ID, "Sliding window", "Arrays", " arrays ", "Two Pointers")
		assert.Equal(t, []any{"arrays", "two pointers"}, d["tags"])
		user := d["user"].(map[string]any)
		assert.Equal(t, "ada", user["name"])
		assert.Equal(t, "ada@example.com", user["email"])
	})

	t.Run("Legacy route", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/discussions", "", gin.H{
			"title": "Legacy", "content": "body", "tags": []string{}, "userId": ada.ID,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Missing tags", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/discussions/create", "", gin.H{
			"title": "No tags", "content": "body", "userId": ada.ID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", errorOf(t, w))
	})

	t.Run("Unknown user", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/discussions/create", "", gin.H{
			"title": "Ghost", "content": "body", "tags": []string{}, "userId": "ghost",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", errorOf(t, w))
	})

	t.Run("Malformed body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/discussions/create", "", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListDiscussions(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")

	for i := 0; i < 12; i++ {
		tag := "graphs"
		if i%3 == 0 {
			tag = "dynamic programming"
		}
		env.createDiscussion(t, ada.ID, fmt.Sprintf("Discussion %d", i), tag)
	}

	type page struct {
		Discussions []map[string]any `json:"discussions"`
		Total       int              `json:"total"`
		HasMore     bool             `json:"hasMore"`
	}

	t.Run("Default page", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		p := decode[page](t, w)
		assert.Len(t, p.Discussions, 10)
		assert.Equal(t, 12, p.Total)
		assert.True(t, p.HasMore)
		assert.Equal(t, "Discussion 11", p.Discussions[0]["title"])
	})

	t.Run("Second page", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions?page=2&limit=10", "", nil)
		p := decode[page](t, w)
		assert.Len(t, p.Discussions, 2)
		assert.False(t, p.HasMore)
	})

	t.Run("Tag substring", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions?tag=DYNAMIC", "", nil)
		p := decode[page](t, w)
		assert.Equal(t, 4, p.Total)
	})

	t.Run("Garbage paging falls back", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions?page=abc&limit=-4", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[page](t, w).Discussions, 10)
	})

	t.Run("Huge page is empty", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions?page=1000000000000000000&limit=10", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		p := decode[page](t, w)
		assert.Empty(t, p.Discussions)
		assert.Equal(t, 12, p.Total)
		assert.False(t, p.HasMore)
	})

	t.Run("All", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/discussions/all", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]map[string]any](t, w), 12)
	})
}

func TestUpdateAndDeleteDiscussion(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")
	bob := env.signIn(t, "bob")

	d := env.createDiscussion(t, ada.ID, "Heaps", "heap")
	id := d["id"].(string)
	path := "/api/discussions/" + id

	t.Run("Owner edits", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/discussions/edit/"+id, "", gin.H{
			"title": "Heaps 2", "content": "updated", "tags": []string{"Heap", "PQ"}, "userId": ada.ID,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decode[map[string]any](t, w)
		assert.Equal(t, "Heaps 2", updated["title"])
		assert.Equal(t, []any{"heap", "pq"}, updated["tags"])
	})

	t.Run("Legacy patch by stranger", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, path, "", gin.H{
			"title": "Hijack", "content": "x", "tags": []string{}, "userId": bob.ID,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Unauthorized to edit this discussion", errorOf(t, w))
	})

	t.Run("Stranger cannot delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, path, "", gin.H{"userId": bob.ID})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Not authorized to delete this discussion", errorOf(t, w))
	})

	t.Run("Owner deletes with comments", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/comments/"+id, "", gin.H{"userId": bob.ID, "text": "nice"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(t, http.MethodDelete, path, "", gin.H{"userId": ada.ID})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Discussion and associated comments deleted successfully",
			decode[map[string]any](t, w)["message"])

		w = env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Discussion not found", errorOf(t, w))

		w = env.do(t, http.MethodGet, "/api/comments/"+id, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[[]any](t, w))
	})
}

func TestVote(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")
	bob := env.signIn(t, "bob")

	d := env.createDiscussion(t, ada.ID, "Tries")
	id := d["id"].(string)

	vote := func(t *testing.T, body gin.H) map[string]any {
		t.Helper()
		w := env.do(t, http.MethodPost, "/api/discussions/vote", "", body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[map[string]any](t, w)
	}

	t.Run("Upvote then switch", func(t *testing.T) {
		got := vote(t, gin.H{"targetId": id, "type": "discussion", "vote": 1, "userId": bob.ID})
		assert.Equal(t, []any{bob.ID}, got["upvotes"])

		got = vote(t, gin.H{"targetId": id, "type": "discussion", "vote": -1, "userId": bob.ID})
		assert.Empty(t, got["upvotes"])
		assert.Equal(t, []any{bob.ID}, got["downvotes"])
	})

	t.Run("Float literal counts as a vote", func(t *testing.T) {
		got := vote(t, gin.H{"targetId": id, "type": "discussion", "vote": json.RawMessage("1.0"), "userId": ada.ID})
		assert.Contains(t, got["upvotes"], ada.ID)
	})

	t.Run("Comment target", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/comments/"+id, "", gin.H{"userId": bob.ID, "text": "first"})
		require.Equal(t, http.StatusCreated, w.Code)
		commentID := decode[map[string]any](t, w)["id"].(string)

		got := vote(t, gin.H{"targetId": commentID, "type": "comment", "vote": 1, "userId": ada.ID})
		assert.Equal(t, []any{ada.ID}, got["upvotes"])
	})

	cases := []struct {
		name   string
		body   gin.H
		status int
		msg    string
	}{
		{"Missing fields", gin.H{"targetId": id, "type": "discussion", "userId": bob.ID}, http.StatusBadRequest, "Missing required fields"},
		{"Bad type", gin.H{"targetId": id, "type": "post", "vote": 1, "userId": bob.ID}, http.StatusBadRequest, "Invalid target type"},
		{"Bad value", gin.H{"targetId": id, "type": "discussion", "vote": 2, "userId": bob.ID}, http.StatusBadRequest, "Invalid vote value"},
		{"Missing target", gin.H{"targetId": "nope", "type": "comment", "vote": 1, "userId": bob.ID}, http.StatusNotFound, "comment not found"},
		{"String value", gin.H{"targetId": id, "type": "discussion", "vote": "1", "userId": bob.ID}, http.StatusBadRequest, "Invalid vote value"},
		{"Fractional value", gin.H{"targetId": id, "type": "discussion", "vote": 0.5, "userId": bob.ID}, http.StatusBadRequest, "Invalid vote value"},
		{"Object value", gin.H{"targetId": id, "type": "discussion", "vote": gin.H{"up": true}, "userId": bob.ID}, http.StatusBadRequest, "Invalid vote value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/discussions/vote", "", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, errorOf(t, w))
		})
	}

	t.Run("Legacy vote", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/discussions/"+id+"/vote", "", gin.H{"userId": ada.ID, "voteType": "upvote"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decode[map[string]any](t, w)["upvotes"], ada.ID)

		w = env.do(t, http.MethodPost, "/api/discussions/"+id+"/vote", "", gin.H{"userId": ada.ID, "voteType": "meh"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, decode[map[string]any](t, w)["upvotes"], ada.ID)

		w = env.do(t, http.MethodPost, "/api/discussions/missing/vote", "", gin.H{"userId": ada.ID, "voteType": "upvote"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Discussion not found", errorOf(t, w))
	})
}

func TestQuestionDiscussions(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")

	w := env.do(t, http.MethodPost, "/api/question-discussions", "", gin.H{
		"title": "Approach", "content": "use a heap", "questionTitle": "Merge k Sorted Lists", "userId": ada.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/question-discussions/Merge%20k%20Sorted%20Lists", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Approach", list[0]["title"])

	w = env.do(t, http.MethodPost, "/api/question-discussions", "", gin.H{"title": "x", "userId": ada.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields", errorOf(t, w))
}
