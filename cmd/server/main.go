package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/VitaminP8/dsaboard/internal/api"
	"github.com/VitaminP8/dsaboard/internal/auth"
	"github.com/VitaminP8/dsaboard/internal/config"
	"github.com/VitaminP8/dsaboard/internal/forum"
	"github.com/VitaminP8/dsaboard/internal/logging"
	"github.com/VitaminP8/dsaboard/internal/metrics"
	"github.com/VitaminP8/dsaboard/internal/questions"
	"github.com/VitaminP8/dsaboard/internal/storage/memory"
	"github.com/VitaminP8/dsaboard/internal/storage/postgres"
	"github.com/VitaminP8/dsaboard/internal/subscription"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "dsaboard",
		Usage: "REST backend for interview question discussions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "storage",
				Value: "memory",
				Usage: "Тип хранилища: memory или postgres",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to an optional TOML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "override the listen port",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(c *cli.Context) error {
	// загружаем .env до чтения конфигурации
	config.LoadEnv()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.Setup(cfg.LogLevel, cfg.IsDevelopment())

	stores, cleanup, err := openStores(c.String("storage"), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.GoogleClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID is empty, Google sign-in will reject every credential")
	}

	stores.Questions = questions.NewFeed(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.QuestionsURLTemplate)

	gateway := auth.NewGateway(
		auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		auth.NewGoogleVerifier(cfg.GoogleClientID),
		stores.Users,
		cfg.AuthRequireSession,
	)

	router := api.NewRouter(api.RouterConfig{
		Forum:          forum.NewService(stores, subscription.NewSubscriptionManager()),
		Auth:           gateway,
		Metrics:        metrics.NewMetrics("http"),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		// ждем SIGINT/SIGTERM или падения сервера
		<-ctx.Done()
		log.Info().Msg("Завершение...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Сервер остановлен корректно")
	return nil
}

func openStores(kind string, cfg *config.Config) (forum.Stores, func(), error) {
	switch kind {
	case "postgres":
		if cfg.DatabaseURL == "" {
			return forum.Stores{}, nil, errors.New("DATABASE_URL is required for postgres storage")
		}
		if err := postgres.InitDB(cfg.DatabaseURL); err != nil {
			return forum.Stores{}, nil, err
		}
		if err := postgres.Migrate(); err != nil {
			_ = postgres.CloseDB()
			return forum.Stores{}, nil, fmt.Errorf("failed to migrate database: %w", err)
		}

		log.Info().Msg("Используется PostgreSQL хранилище")
		stores := forum.Stores{
			Users:               postgres.NewUserPostgresStorage(),
			Discussions:         postgres.NewDiscussionPostgresStorage(),
			QuestionDiscussions: postgres.NewQuestionDiscussionPostgresStorage(),
			Comments:            postgres.NewCommentPostgresStorage(),
			Votes:               postgres.NewVotePostgresStorage(),
			Feedback:            postgres.NewFeedbackPostgresStorage(),
		}
		closeDB := func() {
			if err := postgres.CloseDB(); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}
		return stores, closeDB, nil

	case "memory":
		log.Info().Msg("Используется in-memory хранилище")
		votes := memory.NewVoteMemoryStorage()
		comments := memory.NewCommentMemoryStorage(votes)
		return forum.Stores{
			Users:               memory.NewUserMemoryStorage(),
			Discussions:         memory.NewDiscussionMemoryStorage(comments, votes),
			QuestionDiscussions: memory.NewQuestionDiscussionMemoryStorage(comments, votes),
			Comments:            comments,
			Votes:               votes,
			Feedback:            memory.NewFeedbackMemoryStorage(),
		}, func() {}, nil

	default:
		return forum.Stores{}, nil, fmt.Errorf("неизвестный тип хранилища: %s", kind)
	}
}
