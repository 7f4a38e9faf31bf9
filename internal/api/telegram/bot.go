package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"

	app "avatar-ai/internal/application"
	"avatar-ai/internal/domain/entity"
)

const (
	msgStart = `👋 Hei! Jeg lager en tegneserie-avatar av ansiktet ditt.

📸 Send meg en selfie, så får du avataren tilbake som bilde.

📋 Kommandoer:
/help — hjelp`

	msgHelp = `ℹ️ Slik bruker du boten:

1️⃣ Send et bilde av ansiktet ditt
2️⃣ Boten finner ansiktet og klipper det ut
3️⃣ Du får tilbake en avatar (PNG)

💡 Tips:
• Se rett inn i kameraet
• Sørg for godt lys
• Bare ett ansikt i bildet`

	msgSendPhoto      = "📸 Send meg en selfie, så lager jeg en avatar."
	msgUnknownCommand = "❓ Ukjent kommando. Bruk /help for hjelp."
	msgProcessing     = "⏳ Lager avatar..."
	msgDownloadError  = "⚠️ Klarte ikke å hente bildet. Prøv igjen."
	avatarCaption     = "✅ Her er avataren din!"
)

// AvatarRenderer операция приложения, нужная боту
type AvatarRenderer interface {
	Render(ctx context.Context, data []byte) ([]byte, error)
}

// Bot отвечает на селфи аватарами
type Bot struct {
	api     *tgbotapi.BotAPI
	avatars AvatarRenderer
	log     *logrus.Logger
	client  *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, avatars AvatarRenderer, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:     api,
		avatars: avatars,
		log:     log,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg.Chat.ID, fileID)
		return
	}

	if msg.Document != nil {
		b.sendMessage(msg.Chat.ID, entity.MsgInvalidContentType)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)
	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)
	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// imageFileID выбирает фото максимального размера или изображение, отправленное документом.
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && app.IsImageContentType(msg.Document.MimeType) {
		return msg.Document.FileID, true
	}
	return "", false
}

func (b *Bot) handleImage(ctx context.Context, chatID int64, fileID string) {
	b.sendMessage(chatID, msgProcessing)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("download photo")
		b.sendMessage(chatID, msgDownloadError)
		return
	}

	avatar, err := b.avatars.Render(ctx, imageData)
	if err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Info("avatar not generated")
		b.sendMessage(chatID, app.FailureMessage(err))
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "avatar.png", Bytes: avatar})
	photo.Caption = avatarCaption
	if _, err := b.api.Send(photo); err != nil {
		b.log.WithError(err).WithField("chat_id", chatID).Error("send avatar")
	}
}

// downloadFile скачивает файл из Telegram с повторами
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	return fetchWithRetry(ctx, b.client, file.Link(b.api.Token))
}

var errServerSide = errors.New("telegram file server error")

// fetchWithRetry повторяет запрос при сетевых ошибках и ответах 5xx.
func fetchWithRetry(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	var data []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("download file: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("%w: %s", errServerSide, resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download file: %s", resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("read file: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("send message")
	}
}
