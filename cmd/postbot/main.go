package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"social-post-bot/internal/ai"
	"social-post-bot/internal/bot"
	"social-post-bot/internal/config"
	"social-post-bot/internal/logger"
	"social-post-bot/internal/repository"
	"social-post-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)

	generator := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	postSvc := service.NewPostService(eventRepo, generator, loc)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("bot api: %v", err)
	}
	zlog.Info("bot authorized", zap.String("account", api.Self.UserName))

	telegramBot := bot.New(api, userRepo, eventRepo, postSvc, zlog)

	zlog.Info("social post bot started")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	zlog.Info("shutdown complete")
}
