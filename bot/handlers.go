package bot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"webio-bot/chatlog"
)

const (
	StartText = "Hello! Thanks for using WebioBot! How can I help you?"
	HelpText  = "WEB.io, also known as web data extraction or web harvesting, is the process of automatically collecting data from websites. " +
		"This process involves the use of software tools that can extract and collect information from web pages, such as text, images, and links. " +
		"The collected data can be used for a wide range of purposes, including market research, competitor analysis, and data analytics."
	InputText = "Please paste the link of the website from which data is to be scraped. " +
		"Disclaimer: Do not paste links from .gov, .org, or any organizational or government websites."
	DeletedText = "Message deleted successfully!"
)

// handleCommand answers the known commands. It reports false for anything
// else so the caller can treat it as plain text.
func (b *Bot) handleCommand(ctx context.Context, log *slog.Logger, m *tgbotapi.Message) bool {
	if !b.addressedToSelf(m) {
		return false
	}
	chatID := m.Chat.ID
	switch m.Command() {
	case "start":
		b.reply(ctx, log, chatID, StartText)
	case "help":
		b.reply(ctx, log, chatID, HelpText)
	case "input":
		b.reply(ctx, log, chatID, InputText)
	case "delete":
		if err := b.Client.DeleteMessage(ctx, chatID, m.MessageID); err != nil {
			log.Warn("delete message failed", "chat_id", chatID, "message_id", m.MessageID, "err", err)
			b.reply(ctx, log, chatID, fmt.Sprintf("Failed to delete message: %v", err))
			return true
		}
		b.reply(ctx, log, chatID, DeletedText)
	default:
		return false
	}
	return true
}

func (b *Bot) handleText(ctx context.Context, log *slog.Logger, m *tgbotapi.Message) {
	userID := senderID(m)
	log.Info("received message", "user_id", userID, "chat_type", m.Chat.Type, "text", m.Text)

	if err := b.ChatLog.Append(chatlog.Record{UserID: userID, ChatType: m.Chat.Type, Text: m.Text}); err != nil {
		log.Warn("append chat log failed", "err", err)
	}

	route := Classify(m.Chat.Type, m.Text, b.MentionTag)
	var reply string
	switch route.Kind {
	case RouteIgnore:
		return
	case RouteURL:
		reply = PageReply(b.Pages.Extract(ctx, route.Content))
	default:
		reply = Respond(route.Content)
	}
	b.reply(ctx, log, m.Chat.ID, reply)
}

func (b *Bot) handleDocument(ctx context.Context, log *slog.Logger, m *tgbotapi.Message) {
	doc := m.Document
	chatID := m.Chat.ID
	log.Info("received document",
		"user_id", senderID(m), "chat_type", m.Chat.Type,
		"file_name", doc.FileName, "mime_type", doc.MimeType, "size", doc.FileSize)

	limit := b.MaxDocumentBytes
	if limit > 0 && int64(doc.FileSize) > limit {
		b.reply(ctx, log, chatID, fmt.Sprintf("The document is too large (%d bytes, limit %d).", doc.FileSize, limit))
		return
	}

	data, err := b.Client.DownloadFile(ctx, doc.FileID, limit)
	if err != nil {
		log.Warn("download document failed", "file_id", doc.FileID, "err", err)
		b.reply(ctx, log, chatID, fmt.Sprintf("Failed to download the document: %v", err))
		return
	}
	b.reply(ctx, log, chatID, DocumentReply(b.Documents.Extract(bytes.NewReader(data), int64(len(data)))))
}

// reply sends text in order, one message per chunk.
func (b *Bot) reply(ctx context.Context, log *slog.Logger, chatID int64, text string) {
	chunks := Chunk(text, MaxMessageLength)
	log.Info("bot reply", "chat_id", chatID, "chars", len(text), "messages", len(chunks))
	log.Debug("bot reply text", "chat_id", chatID, "text", text)
	for i, c := range chunks {
		if err := b.Client.SendText(ctx, chatID, c); err != nil {
			log.Warn("send message failed", "chat_id", chatID, "chunk", i, "err", err)
			return
		}
	}
}

// addressedToSelf reports whether a /cmd@name command is unaddressed or
// addressed to this bot.
func (b *Bot) addressedToSelf(m *tgbotapi.Message) bool {
	_, target, found := strings.Cut(m.CommandWithAt(), "@")
	if !found || target == "" {
		return true
	}
	return strings.EqualFold(target, strings.TrimPrefix(b.MentionTag, "@"))
}

func senderID(m *tgbotapi.Message) int64 {
	if m.From == nil {
		return 0
	}
	return m.From.ID
}
