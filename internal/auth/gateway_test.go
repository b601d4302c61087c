package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity *Identity
	err      error
}

func (v *stubVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

// whoami отдает userId из контекста, чтобы проверить работу middleware
func whoami(c *gin.Context) {
	p, ok := PrincipalFromContext(c.Request.Context())
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	if p.Rejected {
		c.String(http.StatusOK, "rejected")
		return
	}
	if p.Verified {
		c.String(http.StatusOK, "verified:"+p.UserID)
		return
	}
	c.String(http.StatusOK, "legacy:"+p.UserID)
}

func newTestGateway(requireSession bool) *Gateway {
	return NewGateway(
		NewTokenIssuer(testSecret, time.Hour),
		&stubVerifier{identity: &Identity{Subject: "google-1", Email: "ada@example.com", Name: "Ada"}},
		memory.NewUserMemoryStorage(),
		requireSession,
	)
}

func serve(t *testing.T, h http.Handler, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGateway_SignIn(t *testing.T) {
	g := newTestGateway(false)
	ctx := context.Background()

	u, token, err := g.SignIn(ctx, "credential")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.NotEmpty(t, token)

	again, _, err := g.SignIn(ctx, "credential")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)

	claims, err := g.tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	g.verifier = &stubVerifier{err: ErrVerification}
	_, _, err = g.SignIn(ctx, "credential")
	assert.ErrorIs(t, err, ErrVerification)
}

func TestGateway_Identify(t *testing.T) {
	g := newTestGateway(false)
	r := gin.New()
	r.Use(g.Identify())
	r.GET("/", whoami)

	token, err := g.tokens.Issue(&model.User{ID: "u-1"})
	require.NoError(t, err)

	t.Run("Valid token", func(t *testing.T) {
		w := serve(t, r, "Bearer "+token)
		assert.Equal(t, "verified:u-1", w.Body.String())
	})

	t.Run("Invalid token passes through as rejected", func(t *testing.T) {
		w := serve(t, r, "Bearer aaa.bbb.ccc")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "rejected", w.Body.String())
	})

	t.Run("Legacy raw user id", func(t *testing.T) {
		w := serve(t, r, "Bearer 6650b1c2e4b0a1f2c3d4e5f6")
		assert.Equal(t, "legacy:6650b1c2e4b0a1f2c3d4e5f6", w.Body.String())
	})

	t.Run("No token", func(t *testing.T) {
		w := serve(t, r, "")
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("Legacy id ignored when a session is required", func(t *testing.T) {
		strict := newTestGateway(true)
		r := gin.New()
		r.Use(strict.Identify())
		r.GET("/", whoami)

		w := serve(t, r, "Bearer 6650b1c2e4b0a1f2c3d4e5f6")
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestGateway_RequireSession(t *testing.T) {
	g := newTestGateway(false)
	r := gin.New()
	r.GET("/", g.RequireSession(), whoami)

	t.Run("No token", func(t *testing.T) {
		w := serve(t, r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Access denied. No token provided."}`, w.Body.String())
	})

	t.Run("Invalid token", func(t *testing.T) {
		w := serve(t, r, "Bearer not-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid token."}`, w.Body.String())
	})

	t.Run("Valid token", func(t *testing.T) {
		token, err := g.tokens.Issue(&model.User{ID: "u-7"})
		require.NoError(t, err)

		w := serve(t, r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "verified:u-7", w.Body.String())
	})
}

func TestGateway_ResolveUserID(t *testing.T) {
	verified := WithPrincipal(context.Background(), Principal{UserID: "u-1", Verified: true})
	legacy := WithPrincipal(context.Background(), Principal{UserID: "u-header"})

	t.Run("Verified session wins", func(t *testing.T) {
		g := newTestGateway(false)

		id, err := g.ResolveUserID(verified, "")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)

		id, err = g.ResolveUserID(verified, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)

		_, err = g.ResolveUserID(verified, "u-2")
		assert.ErrorIs(t, err, ErrIdentityMismatch)
	})

	t.Run("Rejected token", func(t *testing.T) {
		rejected := WithPrincipal(context.Background(), Principal{Rejected: true})

		_, err := newTestGateway(false).ResolveUserID(rejected, "u-body")
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = newTestGateway(true).ResolveUserID(rejected, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Legacy header before body", func(t *testing.T) {
		g := newTestGateway(false)

		id, err := g.ResolveUserID(legacy, "u-body")
		require.NoError(t, err)
		assert.Equal(t, "u-header", id)

		id, err = g.ResolveUserID(context.Background(), "u-body")
		require.NoError(t, err)
		assert.Equal(t, "u-body", id)

		id, err = g.ResolveUserID(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("Session required", func(t *testing.T) {
		g := newTestGateway(true)

		_, err := g.ResolveUserID(context.Background(), "u-body")
		assert.ErrorIs(t, err, ErrUnauthorized)

		id, err := g.ResolveUserID(verified, "")
		require.NoError(t, err)
		assert.Equal(t, "u-1", id)
	})
}
