package api

import (
	"net/http"

	"github.com/VitaminP8/dsaboard/internal/auth"
	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/VitaminP8/dsaboard/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RouterConfig struct {
	Forum          *forum.Service
	Auth           *auth.Gateway
	Metrics        *metrics.Metrics
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handler serves the HTTP API on top of the forum service.
type Handler struct {
	forum   *forum.Service
	auth    *auth.Gateway
	metrics *metrics.Metrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if err := RegisterValidators(); err != nil {
		log.Warn().Err(err).Msg("custom validators not registered")
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewMetrics("http")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		cfg.RateLimitRPS, cfg.RateLimitBurst = 5, 10
	}

	h := &Handler{forum: cfg.Forum, auth: cfg.Auth, metrics: cfg.Metrics}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), cfg.Metrics.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	authGroup := router.Group("/auth", RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		authGroup.POST("/google", h.GoogleSignIn)
		authGroup.GET("/me", cfg.Auth.RequireSession(), h.Me)
	}

	api := router.Group("/api", cfg.Auth.Identify())
	{
		api.GET("/companies", h.Companies)
		api.GET("/questions/:company", h.Questions)

		api.GET("/user/solved-questions", h.SolvedQuestions)
		api.POST("/user/solved-questions/add", h.AddSolvedQuestion)
		api.POST("/user/solved-questions/remove", h.RemoveSolvedQuestion)

		discussions := api.Group("/discussions")
		{
			discussions.GET("", h.ListDiscussions)
			discussions.GET("/all", h.AllDiscussions)
			discussions.POST("/create", h.CreateDiscussion)
			discussions.POST("", h.CreateDiscussion)
			discussions.POST("/vote", h.Vote)
			discussions.PUT("/edit/:id", h.UpdateDiscussion)
			discussions.GET("/:id", h.GetDiscussion)
			discussions.PATCH("/:id", h.UpdateDiscussion)
			discussions.DELETE("/:id", h.DeleteDiscussion)
			discussions.POST("/:id/vote", h.LegacyVote)
		}

		api.POST("/comments/:discussionId", h.AddComment)
		api.GET("/comments/:discussionId", h.CommentTree)
		api.GET("/comments/:discussionId/stream", h.StreamComments)

		api.POST("/question-discussions", h.CreateQuestionDiscussion)
		api.GET("/question-discussions/:questionTitle", h.QuestionDiscussions)
		api.POST("/question-comment/:discussionId", h.AddQuestionComment)
		api.GET("/question-comment/:discussionId", h.QuestionComments)
		api.POST("/question-comment-reply/:discussionId", h.AddQuestionReply)
		api.GET("/question-comment-reply/:discussionId", h.QuestionCommentTree)

		api.POST("/feedback", h.SubmitFeedback)
	}

	return router
}
