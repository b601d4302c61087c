package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 15 * time.Second

type addCommentFunc func(ctx context.Context, discussionID string, in forum.CommentInput) (*model.Comment, error)

func (h *Handler) AddComment(c *gin.Context) {
	h.addComment(c, h.forum.AddComment, true, "Failed to create comment")
}

// AddQuestionComment always creates a top-level comment.
func (h *Handler) AddQuestionComment(c *gin.Context) {
	h.addComment(c, h.forum.AddQuestionComment, false, "Failed to create question-specific comment")
}

func (h *Handler) AddQuestionReply(c *gin.Context) {
	h.addComment(c, h.forum.AddQuestionComment, true, "Failed to create nested comment")
}

func (h *Handler) addComment(c *gin.Context, add addCommentFunc, withParent bool, fallback string) {
	var req commentRequest
	if err := bindJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := h.auth.ResolveUserID(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err, fallback)
		return
	}

	in := forum.CommentInput{UserID: userID, Text: req.Text}
	if withParent {
		in.ParentCommentID = req.ParentCommentID
	}

	created, err := add(c.Request.Context(), c.Param("discussionId"), in)
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) CommentTree(c *gin.Context) {
	h.commentTree(c, "Failed to fetch comments")
}

func (h *Handler) QuestionCommentTree(c *gin.Context) {
	h.commentTree(c, "Failed to fetch nested comments")
}

func (h *Handler) commentTree(c *gin.Context, fallback string) {
	tree, err := h.forum.CommentTree(c.Request.Context(), c.Param("discussionId"))
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *Handler) QuestionComments(c *gin.Context) {
	list, err := h.forum.Comments(c.Request.Context(), c.Param("discussionId"))
	if err != nil {
		respondError(c, err, "Failed to fetch question-specific comments")
		return
	}
	c.JSON(http.StatusOK, list)
}

// StreamComments relays comments created in a discussion as server-sent
// events until the client goes away.
func (h *Handler) StreamComments(c *gin.Context) {
	ctx := c.Request.Context()
	discussionID := c.Param("discussionId")

	events, cancel, err := h.forum.Watch(ctx, discussionID)
	if err != nil {
		respondError(c, err, "Failed to fetch comments")
		return
	}
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"discussion": discussionID})
	c.Writer.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case comment, ok := <-events:
			if !ok {
				// отстающий клиент отключен менеджером, пусть переподключится
				c.SSEvent("close", "lagging")
				return false
			}
			c.SSEvent("comment", comment)
			h.metrics.CommentsStreamed.Inc()
			return true
		}
	})
}
