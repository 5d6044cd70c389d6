package tg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
)

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		limited   bool
		wantAfter time.Duration
	}{
		{"tdlib 429", errors.New("429 Too Many Requests: retry after 30"), true, 30 * time.Second},
		{"flood wait", errors.New("400 FLOOD_WAIT_12"), true, 12 * time.Second},
		{"no duration", errors.New("Too Many Requests"), true, defaultRetryAfter},
		{"other", errors.New("400 CHAT_ADMIN_REQUIRED"), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapErr("forwardMessages", tt.err)
			rl, ok := domain.AsRateLimit(got)
			require.Equal(t, tt.limited, ok)
			if !tt.limited {
				assert.Same(t, tt.err, got)
				return
			}
			assert.Equal(t, "forwardMessages", rl.Op)
			assert.Equal(t, tt.wantAfter, rl.RetryAfter)
		})
	}

	assert.NoError(t, wrapErr("x", nil))
}
