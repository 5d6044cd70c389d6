package domain

// Sender описывает автора входящего сообщения
type Sender struct {
	ID        int64
	IsBot     bool
	Username  string
	FirstName string
}

// DisplayName возвращает @username, а если его нет — имя
func (s *Sender) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	return s.FirstName
}

// Message описывает входящее сообщение из Telegram
type Message struct {
	ChatID    int64
	ChatTitle string
	IsGroup   bool
	MessageID int64
	Text      string
	// Sender == nil, если автора не удалось определить (например, пишет канал)
	Sender *Sender
}
