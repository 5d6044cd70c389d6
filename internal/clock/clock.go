// Package clock — источник времени, подменяемый в тестах кулдауна.
package clock

import (
	"sync"
	"time"
)

// Clock — всё, что нужно от времени
type Clock interface {
	Now() time.Time
}

// Real — настоящее время
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// Mock — ручные часы для тестов
type Mock struct {
	mu          sync.Mutex
	currentTime time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// Advance сдвигает время вперёд на d
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
