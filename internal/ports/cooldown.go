package ports

import "context"

// CooldownStore — окно тишины по группе после отправленного алерта
type CooldownStore interface {
	OnCooldown(ctx context.Context, groupID int64) (bool, error)
	Mark(ctx context.Context, groupID int64) error
}
