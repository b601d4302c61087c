package api

import (
	"net/http"

	"github.com/VitaminP8/dsaboard/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (h *Handler) GoogleSignIn(c *gin.Context) {
	var req googleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	u, token, err := h.auth.SignIn(c.Request.Context(), req.Credential)
	if err != nil {
		log.Warn().Err(err).Msg("google sign-in failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
		return
	}

	solved := u.SolvedQuestions
	if solved == nil {
		solved = []string{}
	}
	c.JSON(http.StatusOK, signInResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		SolvedQuestions: solved,
		Token:           token,
	})
}

// Me returns the profile of the session owner.
func (h *Handler) Me(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
		return
	}

	u, err := h.forum.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}
	c.JSON(http.StatusOK, u)
}
