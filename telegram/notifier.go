package telegram

import (
	"context"
	"fmt"
	"strings"

	"attendancenotifier/pipeline"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxListedFailures = 10

// Sender - часть tgbotapi.BotAPI, которая нужна для отправки
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier отправляет итог запуска в чат отдела кадров
type Notifier struct {
	bot    Sender
	chatID int64
}

func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return bot, nil
}

func NewNotifier(bot Sender, chatID int64) *Notifier {
	return &Notifier{bot: bot, chatID: chatID}
}

func (n *Notifier) NotifySummary(ctx context.Context, s pipeline.Summary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatSummary(s))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send summary: %w", err)
	}
	return nil
}

// FormatSummary - текст сообщения с итогами запуска
func FormatSummary(s pipeline.Summary) string {
	var b strings.Builder

	icon := "✅"
	if !s.Delivered() {
		icon = "⚠️"
	}

	fmt.Fprintf(&b, "%s Attendance run %s\n", icon, s.TargetDate)
	fmt.Fprintf(&b, "Rows fetched: %d\n", s.Fetched)
	fmt.Fprintf(&b, "Classified: %d\n", s.Classified)
	fmt.Fprintf(&b, "Skipped (bad time): %d\n", s.Skipped)
	fmt.Fprintf(&b, "Emails sent: %d of %d\n", s.Sent, s.Composed)

	if len(s.Failed) > 0 {
		fmt.Fprintf(&b, "Failed: %d\n", len(s.Failed))
		for i, f := range s.Failed {
			if i == maxListedFailures {
				fmt.Fprintf(&b, "... and %d more\n", len(s.Failed)-maxListedFailures)
				break
			}
			fmt.Fprintf(&b, "• %s\n", f.To)
		}
	}

	if s.ReportPath != "" {
		fmt.Fprintf(&b, "Report: %s\n", s.ReportPath)
	}
	fmt.Fprintf(&b, "Run: %s", s.RunID)
	return b.String()
}
