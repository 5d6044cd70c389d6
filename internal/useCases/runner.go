package useCases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/larriantoniy/tg_support_watcher/internal/clock"
	"github.com/larriantoniy/tg_support_watcher/internal/metrics"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
	"github.com/larriantoniy/tg_support_watcher/internal/ticket"
)

var ErrNoSessions = errors.New("no sessions configured")

type ClientFactory func(cfg *ports.SessionConfig, log *slog.Logger) (ports.TelegramClient, error)

// Pipeline — общее для всех сессий: владелец, словари, кулдаун, метрики.
type Pipeline struct {
	OwnerID       int64
	OwnerUsername string

	Matcher  Classifier
	Cooldown ports.CooldownStore
	Tickets  ticket.Generator
	Clock    clock.Clock
	Metrics  *metrics.Metrics

	// лимит исходящих уведомлений на одну сессию; 0 — без лимита
	NotifyRate  float64
	NotifyBurst int
}

type Runner struct {
	cfgRepo  ports.SessionConfigRepo
	log      *slog.Logger
	factory  ClientFactory
	pipeline Pipeline
}

func NewRunner(
	cfgRepo ports.SessionConfigRepo,
	log *slog.Logger,
	factory ClientFactory,
	pipeline Pipeline,
) *Runner {
	return &Runner{cfgRepo: cfgRepo, log: log, factory: factory, pipeline: pipeline}
}

// Run запускает клиентов по всем доступным сессиям и ждёт, пока все они
// не отключатся (или не отменят ctx).
func (r *Runner) Run(ctx context.Context) error {
	sessions, err := r.cfgRepo.ListSessions(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return ErrNoSessions
	}

	var wg sync.WaitGroup
	for _, sName := range sessions {
		wg.Add(1)
		go func(sName string) {
			defer wg.Done()
			if err := r.runSession(ctx, sName); err != nil {
				r.log.Error("session failed", "session", sName, "error", err)
			}
		}(sName)
	}
	wg.Wait()

	return nil
}

func (r *Runner) runSession(ctx context.Context, sName string) error {
	cfg, err := r.cfgRepo.GetSessionConfig(ctx, sName)
	if err != nil {
		return fmt.Errorf("get session config: %w", err)
	}

	log := r.log.With("session", cfg.SessionName)

	cli, err := r.factory(cfg, log)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer cli.Close()

	cli.JoinChannels(cfg.Channels)

	ownerChatID, err := cli.ResolveOwner(ctx, r.pipeline.OwnerID, r.pipeline.OwnerUsername)
	if err != nil {
		return fmt.Errorf("resolve owner: %w", err)
	}

	events, err := cli.Listen()
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	dispatcher := NewDispatcher(log, DispatcherConfig{
		Session:     cfg.SessionName,
		Label:       cfg.Label,
		OwnerChatID: ownerChatID,
		TG:          cli,
		Matcher:     r.pipeline.Matcher,
		Cooldown:    r.pipeline.Cooldown,
		Tickets:     r.pipeline.Tickets,
		Clock:       r.pipeline.Clock,
		Metrics:     r.pipeline.Metrics,
		Pacer:       r.pacer(),
	})

	r.pipeline.Metrics.SessionUp()
	defer r.pipeline.Metrics.SessionDown()
	log.Info("client started", "owner_chat_id", ownerChatID)

	for {
		select {
		case <-ctx.Done():
			log.Info("client stopped")
			return nil
		case msg, ok := <-events:
			if !ok {
				log.Info("client disconnected")
				return nil
			}
			dispatcher.Handle(ctx, msg)
		}
	}
}

func (r *Runner) pacer() *rate.Limiter {
	if r.pipeline.NotifyRate <= 0 {
		return nil
	}
	burst := r.pipeline.NotifyBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(r.pipeline.NotifyRate), burst)
}
