// internal/app/notifier.go
package app

import (
	"context"
	"time"

	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram" // Import from domain

	"github.com/sirupsen/logrus"
)

// Message is a notification about to be delivered to the chat.
type Message struct {
	Kind    notification.Kind
	Text    string
	CycleID string
	Cursor  int64
}

// MessageNotifier delivers messages on a best-effort basis.
type MessageNotifier interface {
	Notify(ctx context.Context, msg Message)
}

// Notifier sends messages to a single chat. Delivery failures are logged and
// swallowed so that a broken chat never stops the poll loop.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	journal        notification.Journal
	observer       Observer
	logger         *logrus.Entry
}

func NewNotifier(
	tc domainTelegram.Client,
	chatID int64,
	journal notification.Journal,
	observer Observer,
	logger *logrus.Entry,
) *Notifier {
	if journal == nil {
		journal = notification.NoopJournal{}
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		journal:        journal,
		observer:       observer,
		logger:         logger.WithField("component", "notifier"),
	}
}

// Notify makes exactly one delivery attempt.
func (n *Notifier) Notify(ctx context.Context, msg Message) {
	logCtx := n.logger.WithFields(logrus.Fields{
		"chat_id":  n.chatID,
		"kind":     msg.Kind,
		"cycle_id": msg.CycleID,
	})

	if err := n.telegramClient.SendMessage(n.chatID, msg.Text, nil); err != nil {
		n.observer.NotificationAttempted(string(msg.Kind), false)
		logCtx.WithError(err).Error("Failed to send message")
		return
	}
	n.observer.NotificationAttempted(string(msg.Kind), true)
	logCtx.Debug("Message sent successfully")

	entry := &notification.Entry{
		ChatID:  n.chatID,
		Kind:    msg.Kind,
		Text:    msg.Text,
		CycleID: msg.CycleID,
		Cursor:  msg.Cursor,
		SentAt:  time.Now(),
	}
	if err := n.journal.Append(ctx, entry); err != nil {
		logCtx.WithError(err).Warn("Failed to record sent message in journal")
	}
}
