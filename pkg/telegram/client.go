// Package telegram delivers watering reminders as Telegram bot messages.
package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Client sends messages through one Telegram bot.
type Client struct {
	bot *tele.Bot
}

// NewClient creates a Telegram client for the bot token. apiURL overrides the
// Bot API endpoint and may be empty.
//
// The bot runs offline: it never polls for updates and only sends.
func NewClient(token, apiURL string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("telegram token is empty")
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Client{bot: bot}, nil
}

// Send posts the subject and body to the chat with the given numeric id.
func (c *Client) Send(to, subject, body string) error {
	chatID, err := strconv.ParseInt(strings.TrimSpace(to), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", to, err)
	}

	text := body
	if subject != "" {
		text = subject + "\n\n" + body
	}

	if _, err := c.bot.Send(tele.ChatID(chatID), text); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}
