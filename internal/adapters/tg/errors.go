package tg

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
)

// если Telegram не назвал время ожидания
const defaultRetryAfter = 5 * time.Second

var retryAfterRe = regexp.MustCompile(`(?i)(?:retry after |flood_wait_)(\d+)`)

// isTooManyRequests: TDLib отдаёт флуд-лимит как ошибку 429
// "Too Many Requests: retry after N".
func isTooManyRequests(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.HasPrefix(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "flood_wait")
}

func retryAfter(err error) time.Duration {
	m := retryAfterRe.FindStringSubmatch(err.Error())
	if m == nil {
		return defaultRetryAfter
	}
	sec, convErr := strconv.Atoi(m[1])
	if convErr != nil || sec <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(sec) * time.Second
}

// wrapErr превращает флуд-лимит в *domain.RateLimitError, остальное отдаёт как есть.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTooManyRequests(err) {
		return &domain.RateLimitError{Op: op, RetryAfter: retryAfter(err)}
	}
	return err
}
