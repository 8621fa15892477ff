package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/trivia-bot/internal/config"
	"github.com/aliskhannn/trivia-bot/internal/delivery/telegram"
	"github.com/aliskhannn/trivia-bot/internal/infra/gateway"
	"github.com/aliskhannn/trivia-bot/internal/infra/postgres"
	"github.com/aliskhannn/trivia-bot/internal/logger"
	"github.com/aliskhannn/trivia-bot/internal/repository"
	"github.com/aliskhannn/trivia-bot/internal/service"
	"github.com/aliskhannn/trivia-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "play", Description: "Start a new game"},
		{Command: "options", Description: "Choose the number of questions"},
		{Command: "menu", Description: "Leave the current game"},
		{Command: "stats", Description: "Show your results"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	gw := gateway.New(gateway.Config{
		TriviaURL:      cfg.Trivia.BaseURL,
		ImagesURL:      cfg.Images.BaseURL,
		ImageAccessKey: cfg.Images.AccessKey,
		Timeout:        cfg.HTTP.Timeout,
	}, lg.Named("gateway"))
	if cfg.Images.AccessKey == "" {
		lg.Warn("UNSPLASH_ACCESS_KEY is not set, image requests will be rejected by the source")
	}

	shuffler := service.NewAnswerShuffler()
	gameOpts := service.GameOptions{
		RequestedCount:     cfg.Game.DefaultQuestions,
		AnswerOrder:        service.AnswerOrder(cfg.Game.AnswerOrder),
		StrictResponseCode: cfg.Game.StrictResponseCode,
	}
	games := storage.NewGameStorage(func(chatID int64) *service.Game {
		return service.NewGame(gw, shuffler, gameOpts, lg.Named("game").With(zap.Int64("chat_id", chatID)))
	})

	// Results are recorded only when a database is configured.
	var (
		players telegram.PlayerService
		results telegram.ResultService
	)
	if cfg.DB.Enabled() {
		dsn, _ := cfg.DB.DSN()
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        cfg.DB.MaxConnections,
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		players = service.NewPlayerService(repository.NewUserRepository(pool))
		results = service.NewResultService(postgres.NewTransactor(pool), repository.NewResultRepository(pool))
	} else {
		lg.Warn("DATABASE_URL is not set, game results will not be recorded")
	}

	handler := telegram.NewHandler(bot, lg.Named("telegram"), games, players, results)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	games.Wait()
	lg.Info("shutdown complete")
}
