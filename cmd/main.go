package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"avatar-ai/config"
	"avatar-ai/internal/api/rest"
	"avatar-ai/internal/api/telegram"
	"avatar-ai/internal/container"
	"avatar-ai/internal/infrastructure/logging"
)

// newBot подменяется в тестах.
var newBot = telegram.NewBot

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Fatalf("Service stopped with error: %v", err)
	}
	logger.Info("Service stopped")
}

// run собирает зависимости, запускает HTTP-сервер и бота и ждёт их остановки.
// Детектор закрывается при любом исходе.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	// Детектор и компоновщик создаются один раз и общие для всех запросов.
	appContainer, err := container.Build(cfg, logger)
	if err != nil {
		return fmt.Errorf("build avatar pipeline: %w", err)
	}
	defer appContainer.Detector.Close()

	// Бот создаётся до запуска горутин.
	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		bot, err = newBot(cfg.TelegramToken, appContainer.AvatarService, logger)
		if err != nil {
			return fmt.Errorf("create bot: %w", err)
		}
	} else {
		logger.Info("TELEGRAM_TOKEN is not set, Telegram bot disabled")
	}

	g, ctx := errgroup.WithContext(ctx)

	handler := rest.NewHandler(appContainer.AvatarService, cfg.MaxUploadBytes, logger)
	server := rest.NewServer(cfg.HTTPAddr, handler.Routes(cfg.CORSOrigins), logger)
	g.Go(func() error {
		return server.Run(ctx)
	})

	if bot != nil {
		g.Go(func() error {
			logger.Info("Bot is running...")
			return bot.Run(ctx)
		})
	}

	return g.Wait()
}
