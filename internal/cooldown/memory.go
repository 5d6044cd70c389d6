// Package cooldown — окно тишины по группе после алерта.
//
// Ключ — id группы: не больше одного алерта на группу за окно,
// кто бы из участников ни написал.
package cooldown

import (
	"context"
	"sync"
	"time"

	"github.com/larriantoniy/tg_support_watcher/internal/clock"
)

const DefaultWindow = 10 * time.Minute

// Memory хранит время последнего алерта по группе в памяти процесса.
// Один экземпляр разделяют все сессии.
type Memory struct {
	mu     sync.Mutex
	window time.Duration
	clock  clock.Clock
	last   map[int64]time.Time
}

func NewMemory(window time.Duration, clk clock.Clock) *Memory {
	if window <= 0 {
		window = DefaultWindow
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Memory{
		window: window,
		clock:  clk,
		last:   make(map[int64]time.Time),
	}
}

// OnCooldown: группы без записи никогда не на кулдауне.
func (m *Memory) OnCooldown(_ context.Context, groupID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	last, ok := m.last[groupID]
	if !ok {
		return false, nil
	}
	return m.clock.Now().Sub(last) < m.window, nil
}

func (m *Memory) Mark(_ context.Context, groupID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	m.last[groupID] = now

	// подчищаем протухшие записи, чтобы карта не росла бесконечно
	for id, t := range m.last {
		if now.Sub(t) >= m.window {
			delete(m.last, id)
		}
	}
	return nil
}

func (m *Memory) Window() time.Duration {
	return m.window
}
