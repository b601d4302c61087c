package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/VitaminP8/dsaboard/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnauthorized     = errors.New("authentication required")
	ErrIdentityMismatch = errors.New("asserted user does not match the session")
)

// Gateway is the only place that decides who the caller is.
type Gateway struct {
	tokens         *TokenIssuer
	verifier       IdentityVerifier
	users          user.UserStorage
	requireSession bool
}

func NewGateway(tokens *TokenIssuer, verifier IdentityVerifier, users user.UserStorage, requireSession bool) *Gateway {
	return &Gateway{
		tokens:         tokens,
		verifier:       verifier,
		users:          users,
		requireSession: requireSession,
	}
}

// SignIn verifies an external identity credential, finds or creates the local
// user and issues a session token for it.
func (g *Gateway) SignIn(ctx context.Context, credential string) (*model.User, string, error) {
	identity, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, "", err
	}

	u, err := g.users.FindOrCreateByGoogleID(ctx, identity.Subject, identity.Email, identity.Name)
	if err != nil {
		return nil, "", fmt.Errorf("could not resolve user: %w", err)
	}

	token, err := g.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Identify attaches a Principal when the request carries one. Requests without
// credentials pass through untouched. An invalid session token does not stop
// the request here: public reads still work and ResolveUserID rejects it once
// an acting user is needed.
func (g *Gateway) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.Next()
			return
		}

		if !looksLikeJWT(tokenStr) {
			// старые клиенты кладут в заголовок сам userId
			if !g.requireSession {
				c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), Principal{UserID: tokenStr}))
			}
			c.Next()
			return
		}

		claims, err := g.tokens.Parse(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("rejected session token")
			c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), Principal{Rejected: true}))
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), Principal{
			UserID:   claims.UserID,
			Verified: true,
			Claims:   claims,
		}))
		c.Next()
	}
}

// RequireSession rejects requests without a valid session token.
func (g *Gateway) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}

		claims, err := g.tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), Principal{
			UserID:   claims.UserID,
			Verified: true,
			Claims:   claims,
		}))
		c.Next()
	}
}

// ResolveUserID picks the acting user for a request that also names a user in
// its body or query. A verified session wins and a different asserted id is
// ErrIdentityMismatch. Without a session the legacy header id is used, then the
// asserted one. The result is empty when nothing identifies the caller. A
// rejected token is ErrInvalidToken even if the body names a user.
func (g *Gateway) ResolveUserID(ctx context.Context, asserted string) (string, error) {
	p, ok := PrincipalFromContext(ctx)
	if ok && p.Rejected {
		return "", ErrInvalidToken
	}
	if ok && p.Verified {
		if asserted != "" && asserted != p.UserID {
			return "", ErrIdentityMismatch
		}
		return p.UserID, nil
	}

	if g.requireSession {
		return "", ErrUnauthorized
	}
	if ok && p.UserID != "" {
		return p.UserID, nil
	}
	return asserted, nil
}
