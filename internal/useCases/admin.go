package useCases

import (
	"context"
	"log/slog"

	"github.com/larriantoniy/tg_support_watcher/internal/metrics"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

// AdminFilter спрашивает у Telegram список админов на каждый вызов, без кеша.
type AdminFilter struct {
	log     *slog.Logger
	tg      ports.TelegramClient
	metrics *metrics.Metrics
}

func NewAdminFilter(log *slog.Logger, tg ports.TelegramClient, m *metrics.Metrics) *AdminFilter {
	return &AdminFilter{log: log, tg: tg, metrics: m}
}

// IsAdmin при любой ошибке отвечает false: админ во время сбоя может
// получить алерт, это допустимо.
func (a *AdminFilter) IsAdmin(ctx context.Context, chatID, userID int64) bool {
	admins, err := a.tg.ChatAdministrators(ctx, chatID)
	if err != nil {
		a.log.Warn("admin lookup failed, treating sender as non-admin",
			"chat_id", chatID,
			"user_id", userID,
			"error", err,
		)
		a.metrics.Error(metrics.OpAdmins)
		return false
	}
	for _, id := range admins {
		if id == userID {
			return true
		}
	}
	return false
}
