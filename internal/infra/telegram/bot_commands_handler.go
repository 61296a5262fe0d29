// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"
	"time"

	"homework_status_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// SnapshotProvider is implemented by app.Poller.
type SnapshotProvider interface {
	Snapshot() app.Snapshot
}

const (
	startText   = "Привет! Я слежу за статусом проверки домашних работ и пришлю сообщение, как только он изменится."
	helpText    = "`/status` - текущее состояние опроса API.\n`/help` - показать это сообщение."
	foreignText = "Этот бот отправляет уведомления только в один настроенный чат."
)

// RegisterBotCommands registers /start, /help and /status. Only the configured chat gets answers.
func RegisterBotCommands(
	b *telebot.Bot,
	chatID int64,
	state SnapshotProvider,
	baseLogger *logrus.Entry, // For contextual logging
) {
	cmdLogger := baseLogger.WithField("handler_group", "bot_commands")

	guard := func(command string, next func(c telebot.Context) error) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			logCtx := cmdLogger.WithField("command", command)
			if c.Chat() == nil || c.Chat().ID != chatID {
				logCtx.WithField("foreign_chat", chatIDOf(c)).Warn("Command from a foreign chat ignored")
				return c.Send(foreignText)
			}
			logCtx.Info("Processing command")
			return next(c)
		}
	}

	b.Handle("/start", guard("/start", func(c telebot.Context) error {
		return c.Send(startText)
	}))

	b.Handle("/help", guard("/help", func(c telebot.Context) error {
		return c.Send(helpText, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	}))

	b.Handle("/status", guard("/status", func(c telebot.Context) error {
		return c.Send(StatusReply(state.Snapshot(), time.Now()))
	}))
}

// StatusReply renders the /status answer.
func StatusReply(snap app.Snapshot, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Опрос с: %s\n", time.Unix(snap.Cursor, 0).UTC().Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Циклов выполнено: %d\n", snap.Cycles))

	if snap.Cycles == 0 {
		sb.WriteString("Первый опрос ещё не завершён.")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Последний цикл: %s (%s назад)\n",
		snap.LastOutcome, now.Sub(snap.LastCycleAt).Truncate(time.Second)))
	if snap.LastMessage == "" {
		sb.WriteString("Уведомлений о статусе ещё не было.")
	} else {
		sb.WriteString("Последнее уведомление: ")
		sb.WriteString(snap.LastMessage)
	}
	return sb.String()
}

func chatIDOf(c telebot.Context) int64 {
	if c.Chat() == nil {
		return 0
	}
	return c.Chat().ID
}
