package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SolvedQuestions(c *gin.Context) {
	userID, err := h.auth.ResolveUserID(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "Failed to fetch solved questions")
		return
	}

	solved, err := h.forum.SolvedQuestions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch solved questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"solvedQuestions": solved})
}

type solvedUpdate func(ctx context.Context, userID, title string) ([]string, error)

func (h *Handler) AddSolvedQuestion(c *gin.Context) {
	h.updateSolved(c, h.forum.AddSolvedQuestion, "Failed to mark question as solved")
}

func (h *Handler) RemoveSolvedQuestion(c *gin.Context) {
	h.updateSolved(c, h.forum.RemoveSolvedQuestion, "Failed to unmark question as solved")
}

func (h *Handler) updateSolved(c *gin.Context, apply solvedUpdate, fallback string) {
	var req solvedQuestionRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	solved, err := apply(c.Request.Context(), userID, req.Title)
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"solvedQuestions": solved})
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and feedback are required"})
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, "Failed to submit feedback")
		return
	}

	if _, err := h.forum.SubmitFeedback(c.Request.Context(), userID, req.Feedback); err != nil {
		respondError(c, err, "Failed to submit feedback")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted successfully"})
}
