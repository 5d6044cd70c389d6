// Package ticket — номера тикетов для сводки владельцу (только для показа).
// Номера нигде не хранятся и могут повторяться.
package ticket

import (
	"math/rand/v2"
	"sync"
)

const (
	Min = 100000
	Max = 999999
)

type Generator interface {
	Generate() int
}

// Random выдаёт номера равномерно из [Min, Max]
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom — генератор с фиксированным seed, для воспроизводимых номеров
func NewRandom(seed uint64) *Random {
	return &Random{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Generate() int {
	if r == nil || r.rnd == nil {
		return Min + rand.IntN(Max-Min+1)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Min + r.rnd.IntN(Max-Min+1)
}
