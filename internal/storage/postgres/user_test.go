package postgres

import (
	"context"
	"testing"

	"github.com/VitaminP8/dsaboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPostgresStorage(t *testing.T) {
	withTestDB(t)
	ctx := context.Background()
	storage := NewUserPostgresStorage()

	created, err := storage.FindOrCreateByGoogleID(ctx, "g-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "g-1", created.GoogleID)
	assert.Equal(t, []string{}, created.SolvedQuestions)

	t.Run("Repeated sign-in finds the same user", func(t *testing.T) {
		again, err := storage.FindOrCreateByGoogleID(ctx, "g-1", "other@example.com", "Other")
		require.NoError(t, err)
		assert.Equal(t, created.ID, again.ID)
		assert.Equal(t, "Ada", again.Name)
	})

	t.Run("Solved questions stay unique", func(t *testing.T) {
		_, err := storage.AddSolvedQuestion(ctx, created.ID, "Two Sum")
		require.NoError(t, err)
		_, err = storage.AddSolvedQuestion(ctx, created.ID, "3Sum")
		require.NoError(t, err)
		u, err := storage.AddSolvedQuestion(ctx, created.ID, "Two Sum")
		require.NoError(t, err)
		assert.Equal(t, []string{"Two Sum", "3Sum"}, u.SolvedQuestions)

		u, err = storage.RemoveSolvedQuestion(ctx, created.ID, "Two Sum")
		require.NoError(t, err)
		assert.Equal(t, []string{"3Sum"}, u.SolvedQuestions)

		u, err = storage.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"3Sum"}, u.SolvedQuestions)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := storage.GetUserByID(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = storage.AddSolvedQuestion(ctx, "missing", "x")
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = storage.RemoveSolvedQuestion(ctx, "missing", "x")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestQuestionDiscussionPostgresStorage(t *testing.T) {
	withTestDB(t)
	ctx := context.Background()
	storage := NewQuestionDiscussionPostgresStorage()
	comments := NewCommentPostgresStorage()
	userID := createTestUser(t, "g1")

	d, err := storage.CreateQuestionDiscussion(ctx, &model.QuestionDiscussion{Title: "t", Content: "c", QuestionTitle: "Two Sum", AuthorID: userID})
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", d.QuestionTitle)

	c, err := comments.CreateComment(ctx, &model.Comment{Text: "hi", AuthorID: userID, DiscussionID: d.ID})
	require.NoError(t, err)

	list, err := storage.ListQuestionDiscussions(ctx, "Two Sum")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{c.ID}, list[0].Comments)

	list, err = storage.ListQuestionDiscussions(ctx, "LRU Cache")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = storage.GetQuestionDiscussionByID(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFeedbackPostgresStorage(t *testing.T) {
	withTestDB(t)
	ctx := context.Background()

	f, err := NewFeedbackPostgresStorage().CreateFeedback(ctx, "u1", "nice")
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "nice", f.Feedback)
}
