package useCases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
)

// FakeTelegram is a test fake for ports.TelegramClient.
type FakeTelegram struct {
	mu sync.Mutex

	Admins     []int64
	AdminsErr  error
	ForwardErr error
	SendErr    error
	ResolveErr error
	OwnerChat  int64
	Events     chan domain.Message

	AdminCalls int
	Forwarded  []ForwardCall
	Sent       []SendCall
	Joined     []string
	Closed     bool
}

type ForwardCall struct {
	To, From, MessageID int64
}

type SendCall struct {
	ChatID int64
	Text   string
}

func (f *FakeTelegram) JoinChannels(chs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Joined = append(f.Joined, chs...)
}

func (f *FakeTelegram) Listen() (<-chan domain.Message, error) {
	if f.Events == nil {
		return nil, errors.New("no events")
	}
	return f.Events, nil
}

func (f *FakeTelegram) ChatAdministrators(ctx context.Context, chatID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AdminCalls++
	return f.Admins, f.AdminsErr
}

func (f *FakeTelegram) ForwardMessage(ctx context.Context, to, from, messageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ForwardErr != nil {
		return f.ForwardErr
	}
	f.Forwarded = append(f.Forwarded, ForwardCall{To: to, From: from, MessageID: messageID})
	return nil
}

func (f *FakeTelegram) SendText(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, SendCall{ChatID: chatID, Text: text})
	return nil
}

func (f *FakeTelegram) ResolveOwner(ctx context.Context, userID int64, username string) (int64, error) {
	if f.ResolveErr != nil {
		return 0, f.ResolveErr
	}
	if f.OwnerChat != 0 {
		return f.OwnerChat, nil
	}
	return userID, nil
}

func (f *FakeTelegram) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
}

// Calls counts every outbound collaborator call.
func (f *FakeTelegram) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.AdminCalls + len(f.Forwarded) + len(f.Sent)
}

func (f *FakeTelegram) SentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Sent)
}

// FakeCooldown is a test fake for ports.CooldownStore.
type FakeCooldown struct {
	On       bool
	CheckErr error
	MarkErr  error
	Marked   []int64
}

func (f *FakeCooldown) OnCooldown(ctx context.Context, groupID int64) (bool, error) {
	return f.On, f.CheckErr
}

func (f *FakeCooldown) Mark(ctx context.Context, groupID int64) error {
	f.Marked = append(f.Marked, groupID)
	return f.MarkErr
}

// FakeRepo is a test fake for ports.SessionConfigRepo.
type FakeRepo struct {
	Sessions []string
	ListErr  error
	Configs  map[string]*ports.SessionConfig
}

func (f *FakeRepo) ListSessions(ctx context.Context) ([]string, error) {
	return f.Sessions, f.ListErr
}

func (f *FakeRepo) GetSessionConfig(ctx context.Context, name string) (*ports.SessionConfig, error) {
	cfg, ok := f.Configs[name]
	if !ok {
		return nil, errors.New("unknown session " + name)
	}
	return cfg, nil
}

// fixedTicket always returns the same ticket.
type fixedTicket int

func (t fixedTicket) Generate() int { return int(t) }

// sleepRecorder records backoff sleeps instead of waiting.
type sleepRecorder struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleepRecorder) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.waits = append(s.waits, d)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
