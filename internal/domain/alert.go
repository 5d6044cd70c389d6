package domain

import (
	"fmt"
	"strings"
	"time"
)

const alertTimeLayout = "2006-01-02 15:04:05 UTC"

// Alert собирается на одно событие и сразу отбрасывается
type Alert struct {
	Priority   Priority
	Ticket     int
	GroupTitle string
	SenderName string
	SenderID   int64
	At         time.Time
	Watcher    string
}

func NewAlert(p Priority, ticket int, msg *Message, at time.Time, watcher string) Alert {
	a := Alert{
		Priority:   p,
		Ticket:     ticket,
		GroupTitle: msg.ChatTitle,
		At:         at.UTC(),
		Watcher:    watcher,
	}
	if msg.Sender != nil {
		a.SenderName = msg.Sender.DisplayName()
		a.SenderID = msg.Sender.ID
	}
	return a
}

// Text форматирует сводку для владельца
func (a Alert) Text() string {
	title := a.GroupTitle
	if title == "" {
		title = "Unknown"
	}

	var b strings.Builder
	b.WriteString("📌 ISSUE SUMMARY\n\n")
	fmt.Fprintf(&b, "Priority: %s\n", a.Priority.Label())
	fmt.Fprintf(&b, "Ticket: #%d\n", a.Ticket)
	fmt.Fprintf(&b, "Group: %s\n", title)
	fmt.Fprintf(&b, "User: @%s\n", a.SenderName)
	fmt.Fprintf(&b, "User ID: %d\n", a.SenderID)
	fmt.Fprintf(&b, "Time: %s\n", a.At.Format(alertTimeLayout))
	if a.Watcher != "" {
		fmt.Fprintf(&b, "Watcher: %s\n", a.Watcher)
	}
	return b.String()
}
