// Package listener answers informational platform commands over long polling.
// It shares the audit log with the HTTP API but never writes to it.
package listener

import (
	"context"
	"log/slog"

	"relaybot/internal/audit"
	"relaybot/internal/domain"
	"relaybot/internal/gateway"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const pollTimeoutSeconds = 30

// Listener long-polls the platform for updates and answers the /start,
// /help, /info, and /stats commands. Everything else is ignored.
type Listener struct {
	bot    *tgbotapi.BotAPI
	gw     domain.Gateway
	log    audit.Log
	admins AdminSet
	logger *slog.Logger
}

func New(bot *tgbotapi.BotAPI, log audit.Log, admins AdminSet, logger *slog.Logger) *Listener {
	return &Listener{
		bot:    bot,
		gw:     gateway.NewTelegram(bot),
		log:    log,
		admins: admins,
		logger: logger,
	}
}

// Start begins polling for updates and blocks until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := l.bot.GetUpdatesChan(u)

	l.logger.Info("command listener started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("command listener stopping")
			l.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			l.handleUpdate(ctx, update)
		}
	}
}

func (l *Listener) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil || !msg.IsCommand() {
		return
	}

	l.logger.Info("command received",
		"command", msg.Command(),
		"user_id", msg.From.ID,
		"chat_id", msg.Chat.ID,
	)

	switch msg.Command() {
	case "start":
		l.reply(msg.Chat.ID, startReply(msg.From.FirstName))
	case "help":
		l.reply(msg.Chat.ID, helpReply())
	case "info":
		l.reply(msg.Chat.ID, l.buildInfo(ctx))
	case "stats":
		if !l.admins.Contains(msg.From.ID) {
			l.reply(msg.Chat.ID, statsDeniedReply)
			return
		}
		l.reply(msg.Chat.ID, l.buildStats(ctx))
	}
}

func (l *Listener) buildInfo(ctx context.Context) string {
	self, err := l.gw.SelfInfo(ctx)
	if err != nil {
		l.logger.Error("self info failed", "err", err)
		return "⚠️ Bot info is unavailable right now."
	}
	sent, err := l.log.Count(ctx)
	if err != nil {
		l.logger.Error("audit count failed", "err", err)
	}
	return infoReply(self, sent, l.admins.Len())
}

func (l *Listener) buildStats(ctx context.Context) string {
	total, err := l.log.Count(ctx)
	if err != nil {
		l.logger.Error("audit count failed", "err", err)
		return "⚠️ Statistics are unavailable right now."
	}
	latest, err := l.log.Latest(ctx)
	if err != nil {
		l.logger.Error("audit latest failed", "err", err)
	}
	last, err := l.log.Suffix(ctx, 5)
	if err != nil {
		l.logger.Error("audit suffix failed", "err", err)
	}
	return statsReply(total, latest, l.admins.Len(), last)
}

func (l *Listener) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := l.bot.Send(msg); err != nil {
		l.logger.Error("reply failed", "chat_id", chatID, "err", err)
	}
}
