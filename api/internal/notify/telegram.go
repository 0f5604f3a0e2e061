// Package notify pushes operator alerts to a Telegram chat.
package notify

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	return &Notifier{bot: bot, chatID: chatID}, nil
}

// Send pushes one message, clipped under the Telegram 4096-char limit.
func (n *Notifier) Send(text string) error {
	const maxLen = 3900
	if len(text) > maxLen {
		text = text[:maxLen] + "…"
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	_, err := n.bot.Send(msg)
	return err
}

// SendLines joins the items into a single message, one per line.
func (n *Notifier) SendLines(header string, items []string) error {
	var b strings.Builder
	b.WriteString(header)
	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(it)
	}
	return n.Send(b.String())
}
