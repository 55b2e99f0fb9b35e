package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"webio-bot/chatlog"
)

type Bot struct {
	Log       *slog.Logger
	Client    Client
	Pages     PageExtractor
	Documents DocumentExtractor
	ChatLog   chatlog.Appender
	// MentionTag activates the bot in group chats, e.g. "@WebioBot".
	MentionTag       string
	MaxDocumentBytes int64
}

func (b *Bot) validate() error {
	var errs []error
	if b.Client == nil {
		errs = append(errs, errors.New("missing client"))
	}
	if b.Pages == nil {
		errs = append(errs, errors.New("missing page extractor"))
	}
	if b.Documents == nil {
		errs = append(errs, errors.New("missing document extractor"))
	}
	if b.ChatLog == nil {
		errs = append(errs, errors.New("missing chat log"))
	}
	return errors.Join(errs...)
}

func (b *Bot) logger() *slog.Logger {
	if b.Log == nil {
		return slog.Default()
	}
	return b.Log
}

// Run handles updates one at a time until ctx is done or updates is closed.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	if err := b.validate(); err != nil {
		return fmt.Errorf("bot: %w", err)
	}
	if b.MentionTag == "" {
		b.logger().Warn("mention tag not set; group messages will be ignored")
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, u)
		}
	}
}

// HandleUpdate dispatches a single update. A panicking handler is logged and
// swallowed so the caller's loop keeps going.
func (b *Bot) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	log := b.logger().With("update_id", u.UpdateID)
	defer func() {
		if v := recover(); v != nil {
			log.Error("update handler panicked", "panic", v, "stack", string(debug.Stack()))
		}
	}()

	m := u.Message
	if m == nil || m.Chat == nil {
		return
	}
	switch {
	case m.Document != nil:
		b.handleDocument(ctx, log, m)
	case m.IsCommand() && b.handleCommand(ctx, log, m):
	case m.Text != "":
		b.handleText(ctx, log, m)
	}
}
