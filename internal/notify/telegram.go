package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/rs/zerolog/log"
)

const sendTimeout = 5 * time.Second

// Telegram posts each event as a message to one chat.
type Telegram struct {
	Bot    *telego.Bot
	ChatID int64
}

func NewTelegram(token string, chatID int64, opts ...telego.BotOption) (*Telegram, error) {
	if chatID == 0 {
		return nil, errors.New("telegram chat id is required")
	}

	bot, err := telego.NewBot(token, append([]telego.BotOption{telego.WithDiscardLogger()}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Telegram{
		Bot:    bot,
		ChatID: chatID,
	}, nil
}

func (t *Telegram) Notify(ctx context.Context, e Event) error {
	// The request may already be finishing; the message gets its own deadline.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	if _, err := t.Bot.SendMessage(ctx, tu.Message(tu.ID(t.ChatID), e.Text())); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FromConfig returns an asynchronous Telegram notifier when a bot token is
// configured and Nop otherwise.
func FromConfig(token string, chatID int64) (Notifier, error) {
	if token == "" {
		return Nop{}, nil
	}
	tg, err := NewTelegram(token, chatID)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("chat_id", chatID).Msg("Telegram notifications enabled")
	return NewAsync(tg), nil
}
