package ports

import (
	"context"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
)

// TelegramClient определяет интерфейс для работы с Telegram
// Реализуется конкретными адаптерами (TDLib, Bot API и т.д.).
// Ошибки флуд-контроля возвращаются как *domain.RateLimitError.
type TelegramClient interface {
	// JoinChannels вступает в группы из конфига сессии (@username или invite-ссылка)
	JoinChannels(chs []string)
	// Listen возвращает канал доменных сообщений; канал закрывается при отключении клиента
	Listen() (<-chan domain.Message, error)
	// ChatAdministrators возвращает id администраторов чата
	ChatAdministrators(ctx context.Context, chatID int64) ([]int64, error)
	// ForwardMessage пересылает сообщение messageID из fromChatID в toChatID
	ForwardMessage(ctx context.Context, toChatID, fromChatID, messageID int64) error
	// SendText отправляет обычный текст
	SendText(ctx context.Context, chatID int64, text string) error
	// ResolveOwner находит чат владельца по id или @username
	ResolveOwner(ctx context.Context, userID int64, username string) (int64, error)
	Close()
}
