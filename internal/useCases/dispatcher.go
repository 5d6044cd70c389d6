package useCases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/larriantoniy/tg_support_watcher/internal/clock"
	"github.com/larriantoniy/tg_support_watcher/internal/domain"
	"github.com/larriantoniy/tg_support_watcher/internal/metrics"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
	"github.com/larriantoniy/tg_support_watcher/internal/ticket"
)

type Classifier interface {
	Classify(text string) domain.Priority
}

type DispatcherConfig struct {
	Session     string
	Label       string
	OwnerChatID int64

	TG       ports.TelegramClient
	Matcher  Classifier
	Cooldown ports.CooldownStore
	Tickets  ticket.Generator
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	// Pacer ограничивает исходящие уведомления владельцу; nil — без ограничения
	Pacer *rate.Limiter
	// Sleep используется для ожидания после флуд-лимита; nil — sleepCtx
	Sleep func(ctx context.Context, d time.Duration) error
}

// Dispatcher решает, что делать с одним входящим сообщением.
// Вызывается последовательно из цикла сессии.
type Dispatcher struct {
	log      *slog.Logger
	tg       ports.TelegramClient
	admins   *AdminFilter
	matcher  Classifier
	cooldown ports.CooldownStore
	tickets  ticket.Generator
	clock    clock.Clock
	metrics  *metrics.Metrics
	pacer    *rate.Limiter
	sleep    func(ctx context.Context, d time.Duration) error

	session     string
	label       string
	ownerChatID int64
}

func NewDispatcher(log *slog.Logger, cfg DispatcherConfig) *Dispatcher {
	d := &Dispatcher{
		log:         log,
		tg:          cfg.TG,
		admins:      NewAdminFilter(log, cfg.TG, cfg.Metrics),
		matcher:     cfg.Matcher,
		cooldown:    cfg.Cooldown,
		tickets:     cfg.Tickets,
		clock:       cfg.Clock,
		metrics:     cfg.Metrics,
		pacer:       cfg.Pacer,
		sleep:       cfg.Sleep,
		session:     cfg.Session,
		label:       cfg.Label,
		ownerChatID: cfg.OwnerChatID,
	}
	if d.tickets == nil {
		d.tickets = &ticket.Random{}
	}
	if d.clock == nil {
		d.clock = clock.Real{}
	}
	if d.sleep == nil {
		d.sleep = sleepCtx
	}
	return d
}

// Handle проводит сообщение через фильтры и, если оно прошло, пересылает
// его владельцу вместе со сводкой. Ошибки не возвращаются: событие либо
// обработано, либо отброшено, повторов нет.
func (d *Dispatcher) Handle(ctx context.Context, msg domain.Message) {
	d.metrics.Message(d.session)

	if !msg.IsGroup {
		d.metrics.Skip(metrics.SkipNotGroup)
		return
	}
	if msg.Sender == nil {
		d.metrics.Skip(metrics.SkipNoSender)
		return
	}
	if msg.Sender.IsBot {
		d.metrics.Skip(metrics.SkipBot)
		return
	}

	log := d.log.With(
		"event_id", uuid.NewString(),
		"chat_id", msg.ChatID,
		"msg_id", msg.MessageID,
		"user_id", msg.Sender.ID,
	)

	// классификация до запроса админов: сообщение без ключевых слов
	// не должно стоить ни одного обращения к Telegram
	priority := d.matcher.Classify(msg.Text)
	if priority == domain.Unmatched {
		log.Info("skip: no keyword")
		d.metrics.Skip(metrics.SkipNoKeyword)
		return
	}

	if d.admins.IsAdmin(ctx, msg.ChatID, msg.Sender.ID) {
		log.Info("skip: sender is admin")
		d.metrics.Skip(metrics.SkipAdmin)
		return
	}

	onCooldown, err := d.cooldown.OnCooldown(ctx, msg.ChatID)
	if err != nil {
		log.Warn("cooldown check failed, assuming no cooldown", "error", err)
		d.metrics.Error(metrics.OpCooldown)
	}
	if onCooldown {
		log.Info("skip: group on cooldown", "group", msg.ChatTitle)
		d.metrics.Skip(metrics.SkipCooldown)
		return
	}

	alert := domain.NewAlert(priority, d.tickets.Generate(), &msg, d.clock.Now(), d.label)
	log = log.With("ticket", alert.Ticket, "priority", priority.String())

	if d.pacer != nil {
		if err := d.pacer.Wait(ctx); err != nil {
			log.Warn("alert dropped while waiting for outbound pacer", "error", err)
			return
		}
	}

	if err := d.tg.ForwardMessage(ctx, d.ownerChatID, msg.ChatID, msg.MessageID); err != nil {
		d.fail(ctx, log, metrics.OpForward, err)
		return
	}

	if err := d.tg.SendText(ctx, d.ownerChatID, alert.Text()); err != nil {
		// пересылка уже ушла, но кулдаун не ставим — следующее сообщение
		// из группы снова поднимет алерт
		d.fail(ctx, log, metrics.OpSend, err)
		return
	}

	if err := d.cooldown.Mark(ctx, msg.ChatID); err != nil {
		log.Error("cooldown mark failed", "error", err)
		d.metrics.Error(metrics.OpCooldown)
	}
	d.metrics.Alert(priority.String())
	log.Info("alert forwarded to owner",
		"group", msg.ChatTitle,
		"user", msg.Sender.DisplayName(),
	)
}

// fail: на флуд-лимит ждём сколько сказал Telegram и бросаем событие,
// остальные ошибки только логируем.
func (d *Dispatcher) fail(ctx context.Context, log *slog.Logger, op string, err error) {
	if rl, ok := domain.AsRateLimit(err); ok {
		d.metrics.RateLimit(op)
		log.Warn("rate limited, backing off", "op", op, "wait", rl.RetryAfter)
		if err := d.sleep(ctx, rl.RetryAfter); err != nil {
			log.Warn("backoff interrupted (shutdown?)", "error", err)
		}
		return
	}
	d.metrics.Error(op)
	log.Warn("alert dropped", "op", op, "error", err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
