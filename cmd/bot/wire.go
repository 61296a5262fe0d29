package main

import (
	"context"
	"io"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/metrics"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type application struct {
	cfg     *config.AppConfig
	log     *logrus.Entry
	bot     *telebot.Bot
	source  *practicum.Client
	journal notification.Journal
	metrics *metrics.Collector
	closers []io.Closer
}

// loadConfig is the STARTING state: without all credentials the process exits
// before any network call is made.
func loadConfig() *config.AppConfig {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("FATAL: Could not load application configuration")
	}
	return cfg
}

func wireApp(cfg *config.AppConfig) *application {
	logCloser, err := logger.Init(cfg)
	if err != nil {
		logger.Log.WithError(err).Warn("Log file unavailable, logging to stdout only")
	}
	log := logger.Log.WithField("app", "homework_status_bot")
	log.WithField("environment", cfg.Environment).Info("Tokens found, configuration loaded")

	a := &application{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(),
		closers: []io.Closer{logCloser},
	}

	// Offline skips the getMe round-trip: a Telegram outage must not keep the loop from starting.
	a.bot, err = telebot.NewBot(telebot.Settings{
		Token:   cfg.TelegramToken,
		Offline: true,
		Poller:  &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := log.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("telebot error")
		},
	})
	if err != nil {
		log.WithError(err).Fatal("FATAL: Could not create Telegram bot")
	}

	a.source = practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.RequestTimeout, log)
	a.journal = a.openJournal()
	return a
}

func (a *application) openJournal() notification.Journal {
	if a.cfg.DatabaseURL == "" {
		return notification.NoopJournal{}
	}
	db, err := idb.NewPostgresConnection(a.cfg.DatabaseURL)
	if err != nil {
		a.log.WithError(err).Warn("Notification journal disabled: database unavailable")
		return notification.NoopJournal{}
	}
	repo := idb.NewPostgresJournalRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		a.log.WithError(err).Warn("Notification journal disabled: schema setup failed")
		db.Close()
		return notification.NoopJournal{}
	}
	a.closers = append(a.closers, db)
	a.log.Info("Notification journal enabled")
	return repo
}

// newPoller builds the poll loop around the given notifier. The cursor starts at startCursor.
func (a *application) newPoller(notifier app.MessageNotifier, startCursor int64) *app.Poller {
	waiter := scheduler.NewDelayWaiter(a.cfg.RetryPeriod, a.log)
	return app.NewPoller(a.source, notifier, waiter, a.metrics, a.log, startCursor)
}

func (a *application) chatNotifier() *app.Notifier {
	return app.NewNotifier(telegram.NewTelebotAdapter(a.bot), a.cfg.TelegramChatID, a.journal, a.metrics, a.log)
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.log.WithError(err).Warn("Error while releasing resources")
		}
	}
}
