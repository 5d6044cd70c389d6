package domain

// Priority — результат классификации текста по ключевым словам
type Priority int

const (
	Unmatched Priority = iota
	Mild
	Urgent
)

func (p Priority) String() string {
	switch p {
	case Urgent:
		return "urgent"
	case Mild:
		return "mild"
	default:
		return "unmatched"
	}
}

// Label — то, что видит владелец в уведомлении
func (p Priority) Label() string {
	switch p {
	case Urgent:
		return "🔴 URGENT"
	case Mild:
		return "🟡 MILD"
	default:
		return ""
	}
}
