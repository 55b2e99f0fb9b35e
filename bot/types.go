package bot

import (
	"context"
	"io"

	"webio-bot/extract"
)

// Client is the subset of the Telegram Bot API the handlers use.
type Client interface {
	SendText(ctx context.Context, chatID int64, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	DownloadFile(ctx context.Context, fileID string, maxBytes int64) ([]byte, error)
}

type PageExtractor interface {
	Extract(ctx context.Context, url string) (extract.Page, error)
}

type DocumentExtractor interface {
	Extract(r io.ReaderAt, size int64) (extract.Document, error)
}
