package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvedQuestions(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")

	solved := func(t *testing.T) []any {
		t.Helper()
		w := env.do(t, http.MethodGet, "/api/user/solved-questions?userId="+ada.ID, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		return decode[map[string][]any](t, w)["solvedQuestions"]
	}

	t.Run("Add is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := env.do(t, http.MethodPost, "/api/user/solved-questions/add", "",
				gin.H{"userId": ada.ID, "title": "Two Sum"})
			require.Equal(t, http.StatusOK, w.Code)
		}
		assert.Equal(t, []any{"Two Sum"}, solved(t))
	})

	t.Run("Remove", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/user/solved-questions/remove", "",
			gin.H{"userId": ada.ID, "title": "Two Sum"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, solved(t))
	})

	t.Run("Missing user id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/user/solved-questions", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User ID required", errorOf(t, w))
	})

	t.Run("Unknown user", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/user/solved-questions?userId=ghost", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "User not found", errorOf(t, w))
	})

	t.Run("Missing title", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/user/solved-questions/add", "", gin.H{"userId": ada.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "User ID and question title are required", errorOf(t, w))
	})

	t.Run("Empty body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/user/solved-questions/add", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t, false)
	ada := env.signIn(t, "ada")

	w := env.do(t, http.MethodPost, "/api/feedback", "", gin.H{"userId": ada.ID, "feedback": "more graph problems"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/api/feedback", "", gin.H{"userId": ada.ID, "feedback": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User ID and feedback are required", errorOf(t, w))
}
