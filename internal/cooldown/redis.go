package cooldown

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/tg_support_watcher/internal/clock"
)

const KeyPrefix = "cooldown:group:"

// Redis хранит кулдауны как ключи с TTL = окну. Общий для всех процессов,
// которые смотрят в один Redis, и переживает рестарт.
type Redis struct {
	rdb    redis.UniversalClient
	window time.Duration
	clock  clock.Clock
}

func NewRedis(rdb redis.UniversalClient, window time.Duration, clk clock.Clock) *Redis {
	if window <= 0 {
		window = DefaultWindow
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Redis{rdb: rdb, window: window, clock: clk}
}

func key(groupID int64) string {
	return KeyPrefix + strconv.FormatInt(groupID, 10)
}

func (r *Redis) OnCooldown(ctx context.Context, groupID int64) (bool, error) {
	n, err := r.rdb.Exists(ctx, key(groupID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Mark кладёт время алерта (unix ms) с истечением через окно.
func (r *Redis) Mark(ctx context.Context, groupID int64) error {
	now := r.clock.Now().UnixMilli()
	if err := r.rdb.Set(ctx, key(groupID), now, r.window).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Window() time.Duration {
	return r.window
}
