package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrFileTooLarge = errors.New("file too large")

// Telegram implements Client on top of tgbotapi.
type Telegram struct {
	API        *tgbotapi.BotAPI
	HTTPClient *http.Client
}

// SendText sends one message. tgbotapi has no context support, so ctx is
// only checked before the call; DeleteMessage does the same.
func (t Telegram) SendText(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := t.API.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t Telegram) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// deleteMessage returns a bare bool, which Send cannot decode.
	_, err := t.API.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (t Telegram) DownloadFile(ctx context.Context, fileID string, maxBytes int64) ([]byte, error) {
	link, err := t.API.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	client := t.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return download(ctx, client, link, maxBytes)
}

// download fetches link. Errors never include the link itself because file
// links embed the bot token.
func download(ctx context.Context, client *http.Client, link string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, errors.New("invalid file link")
	}
	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if maxBytes > 0 {
		body = io.LimitReader(resp.Body, maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
