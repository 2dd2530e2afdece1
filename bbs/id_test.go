package bbs

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGeneratorShape(t *testing.T) {
	g := NewIDGenerator(nil)
	for i := 0; i < 100; i++ {
		id := g.Next()
		require.Len(t, id, 15)
		for _, c := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, c), "unexpected character %q in %q", c, id)
		}
	}
}

func TestIDGeneratorDeterministicWithSeededSource(t *testing.T) {
	a := NewIDGenerator(rand.NewSource(42))
	b := NewIDGenerator(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestIDGeneratorNoImmediateCollisions(t *testing.T) {
	g := NewIDGenerator(nil)
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := g.Next()
		require.False(t, seen[id], "collision on %q", id)
		seen[id] = true
	}
}
