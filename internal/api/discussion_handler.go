package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDiscussions(c *gin.Context) {
	// кривые page/limit не ошибка, сервис подставит значения по умолчанию
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.forum.ListDiscussions(c.Request.Context(), forum.DiscussionQuery{
		Tag:   c.Query("tag"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		respondError(c, err, "Failed to fetch discussions")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) AllDiscussions(c *gin.Context) {
	items, err := h.forum.AllDiscussions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch discussions")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetDiscussion(c *gin.Context) {
	d, err := h.forum.GetDiscussion(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch discussion")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDiscussion(c *gin.Context) {
	in, ok := h.discussionInput(c, "Failed to create discussion")
	if !ok {
		return
	}

	d, err := h.forum.CreateDiscussion(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create discussion")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDiscussion(c *gin.Context) {
	in, ok := h.discussionInput(c, "Failed to update discussion")
	if !ok {
		return
	}

	d, err := h.forum.UpdateDiscussion(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err, "Failed to update discussion")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) discussionInput(c *gin.Context, fallback string) (forum.DiscussionInput, bool) {
	var req discussionRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return forum.DiscussionInput{}, false
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, fallback)
		return forum.DiscussionInput{}, false
	}

	return forum.DiscussionInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		UserID:  userID,
	}, true
}

func (h *Handler) DeleteDiscussion(c *gin.Context) {
	var req deleteDiscussionRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, "Failed to delete discussion")
		return
	}

	if err := h.forum.DeleteDiscussion(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete discussion")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discussion and associated comments deleted successfully"})
}

func (h *Handler) Vote(c *gin.Context) {
	var req voteRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	fallback := fmt.Sprintf("Failed to vote on %s", req.Type)

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	target, err := h.forum.Vote(c.Request.Context(), forum.VoteInput{
		TargetID: req.TargetID,
		Type:     req.Type,
		Vote:     voteValue(req.Vote),
		UserID:   userID,
	})
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *Handler) LegacyVote(c *gin.Context) {
	var req legacyVoteRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, "Failed to vote on discussion")
		return
	}

	d, err := h.forum.LegacyVote(c.Request.Context(), c.Param("id"), userID, req.VoteType)
	if err != nil {
		respondError(c, err, "Failed to vote on discussion")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateQuestionDiscussion(c *gin.Context) {
	var req questionDiscussionRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, "Failed to create question discussion")
		return
	}

	d, err := h.forum.CreateQuestionDiscussion(c.Request.Context(), forum.QuestionDiscussionInput{
		Title:         req.Title,
		Content:       req.Content,
		QuestionTitle: req.QuestionTitle,
		UserID:        userID,
	})
	if err != nil {
		respondError(c, err, "Failed to create question discussion")
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) QuestionDiscussions(c *gin.Context) {
	items, err := h.forum.QuestionDiscussions(c.Request.Context(), c.Param("questionTitle"))
	if err != nil {
		respondError(c, err, "Failed to fetch question discussions")
		return
	}
	c.JSON(http.StatusOK, items)
}
