package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/dsaboard/internal/auth"
	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/VitaminP8/dsaboard/internal/metrics"
	"github.com/VitaminP8/dsaboard/internal/mocks"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/storage/memory"
	"github.com/VitaminP8/dsaboard/internal/subscription"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubQuestions struct {
	list []model.Question
	err  error
}

func (s *stubQuestions) Questions(ctx context.Context, company string) ([]model.Question, error) {
	return s.list, s.err
}

type testEnv struct {
	router    *gin.Engine
	verifier  *mocks.MockIdentityVerifier
	questions *stubQuestions
	metrics   *metrics.Metrics
	events    *subscription.SubscriptionManager
}

func newTestEnv(t *testing.T, requireSession bool) *testEnv {
	t.Helper()

	votes := memory.NewVoteMemoryStorage()
	comments := memory.NewCommentMemoryStorage(votes)
	users := memory.NewUserMemoryStorage()

	env := &testEnv{
		verifier:  mocks.NewMockIdentityVerifier(),
		questions: &stubQuestions{},
		metrics:   metrics.NewMetrics("test"),
		events:    subscription.NewSubscriptionManager(),
	}

	svc := forum.NewService(forum.Stores{
		Users:               users,
		Discussions:         memory.NewDiscussionMemoryStorage(comments, votes),
		QuestionDiscussions: memory.NewQuestionDiscussionMemoryStorage(comments, votes),
		Comments:            comments,
		Votes:               votes,
		Feedback:            memory.NewFeedbackMemoryStorage(),
		Questions:           env.questions,
	}, env.events)

	gateway := auth.NewGateway(auth.NewTokenIssuer(testSecret, time.Hour), env.verifier, users, requireSession)

	env.router = NewRouter(RouterConfig{
		Forum:          svc,
		Auth:           gateway,
		Metrics:        env.metrics,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	})
	return env
}

// signIn регистрирует пользователя через /auth/google и возвращает ответ
func (e *testEnv) signIn(t *testing.T, name string) signInResponse {
	t.Helper()
	credential := "credential-" + name
	e.verifier.Allow(credential, auth.Identity{
		Subject: "google-" + name,
		Email:   name + "@example.com",
		Name:    name,
	})

	w := e.do(t, http.MethodPost, "/auth/google", "", gin.H{"credential": credential})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp signInResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, w)["error"].(string)
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dsaboard_test_requests_total")
}

func TestRouter_CompaniesAndQuestions(t *testing.T) {
	env := newTestEnv(t, false)

	t.Run("Companies", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/companies", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]string](t, w)
		assert.Contains(t, list, "google")
	})

	t.Run("Questions", func(t *testing.T) {
		env.questions.list = []model.Question{{Link: "https://leetcode.com/problems/two-sum", Difficulty: "EASY", Title: "Two Sum"}}
		env.questions.err = nil

		w := env.do(t, http.MethodGet, "/api/questions/Google", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[[]model.Question](t, w)
		require.Len(t, list, 1)
		assert.Equal(t, "Two Sum", list[0].Title)
	})

	t.Run("Upstream failure", func(t *testing.T) {
		env.questions.list = nil
		env.questions.err = assert.AnError

		w := env.do(t, http.MethodGet, "/api/questions/Google", "", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Error fetching questions file", errorOf(t, w))
	})
}
