package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"golang.org/x/time/rate"

	"sgpj-client/internal/config"
	"sgpj-client/internal/models"
)

// Telegram posts reminders to the configured chats, rate limited per
// second.
type Telegram struct {
	bot     *bot.Bot
	chatIDs []int64
	limiter *rate.Limiter
}

func NewTelegram(cfg config.Config, opts ...bot.Option) (*Telegram, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("missing Telegram bot token")
	}
	perSecond := cfg.Telegram.RateLimit
	if perSecond <= 0 {
		perSecond = 1
	}
	b, err := bot.New(cfg.Telegram.BotToken, append([]bot.Option{bot.WithSkipGetMe()}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	return &Telegram{
		bot:     b,
		chatIDs: cfg.Telegram.ChatIDs,
		limiter: rate.NewLimiter(rate.Limit(float64(perSecond)), perSecond),
	}, nil
}

func (t *Telegram) Send(ctx context.Context, task models.Task) error {
	if len(t.chatIDs) == 0 {
		return fmt.Errorf("no Telegram chat configured")
	}
	text := FormatTelegram(task)
	var errs []error
	for _, chatID := range t.chatIDs {
		if err := t.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("telegram rate limit exceeded: %w", err)
		}
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: "Markdown",
		}
		if _, err := t.bot.SendMessage(ctx, params); err != nil {
			errs = append(errs, fmt.Errorf("failed to send Telegram message to chat_id %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// FormatTelegram renders a reminder for Markdown parse mode.
func FormatTelegram(task models.Task) string {
	text := fmt.Sprintf("*%s*\n%s", task.Subject, task.Body)
	if !task.Due.IsZero() {
		text += fmt.Sprintf("\n\n*Fecha:* %s", task.Due.Format("02/01/2006 15:04"))
	}
	return text
}
