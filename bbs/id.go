// bbs/id.go
package bbs

import (
	"math/rand"
	"sync"
	"time"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 15
)

// IDGenerator produces opaque 15-character identifiers over [A-Za-z0-9],
// each character drawn independently and uniformly. There is no
// constructed uniqueness guarantee; callers rely on the collision
// probability being negligible. The source is injectable so tests can
// be deterministic.
type IDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewIDGenerator returns a generator backed by the given source. A nil
// source gets a time-seeded one.
func NewIDGenerator(src rand.Source) *IDGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &IDGenerator{rng: rand.New(src)}
}

// Next returns a fresh identifier. It never fails.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[g.rng.Intn(len(idAlphabet))]
	}
	return string(buf)
}
