package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"webio-bot/bot"
	"webio-bot/chatlog"
	"webio-bot/config"
	"webio-bot/extract"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		return 1
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	msgLog, err := chatlog.OpenFile(cfg.LogPath)
	if err != nil {
		logger.Error("open message log failed", "path", cfg.LogPath, "err", err)
		return 1
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("create telegram api failed", "err", err)
		return 1
	}
	api.Debug = cfg.Debug

	web := extract.NewWeb(nil, time.Duration(cfg.FetchTimeoutSec)*time.Second)
	web.UserAgent = cfg.UserAgent
	web.MaxBytes = cfg.MaxPageBytes

	b := &bot.Bot{
		Log:              logger,
		Client:           bot.Telegram{API: api, HTTPClient: &http.Client{}},
		Pages:            web,
		Documents:        extract.NewPDF(),
		ChatLog:          msgLog,
		MentionTag:       cfg.MentionTag(api.Self.UserName),
		MaxDocumentBytes: cfg.MaxDocumentBytes,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = cfg.PollTimeoutSec
	u.AllowedUpdates = []string{"message"}
	updates := api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	logger.Info("started", "username", api.Self.UserName, "mention", b.MentionTag, "log_path", msgLog.Path())
	if err := b.Run(ctx, updates); err != nil {
		logger.Error("bot run failed", "err", err)
		return 1
	}
	logger.Info("shutdown")
	return 0
}
