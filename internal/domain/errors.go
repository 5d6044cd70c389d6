package domain

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError — Telegram попросил подождать RetryAfter перед следующим запросом
type RateLimitError struct {
	Op         string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited, retry after %s", e.Op, e.RetryAfter)
}

// AsRateLimit достаёт RateLimitError из цепочки ошибок
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
