package telegram

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrNotConfigured = errors.New("telegram: bot token or chat id missing")

// Notifier delivers Markdown messages to one chat.
type Notifier interface {
	SendMessage(text string) error
}

type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewClient authenticates the bot and binds it to chatID.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if botToken == "" || chatID == 0 {
		return nil, ErrNotConfigured
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &client{bot: bot, chatID: chatID}, nil
}

func (c *client) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// SendAll sends every part in order and stops at the first failure.
func SendAll(n Notifier, parts []string) error {
	for i, p := range parts {
		if err := n.SendMessage(p); err != nil {
			return fmt.Errorf("failed to send part %d/%d: %w", i+1, len(parts), err)
		}
	}
	return nil
}
