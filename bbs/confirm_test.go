package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteConfirmTwoStep(t *testing.T) {
	var c DeleteConfirm

	// First invocation arms, does not confirm.
	assert.False(t, c.Confirm("A"))
	assert.Equal(t, "A", c.Armed())

	// Second consecutive invocation on the same id confirms and disarms.
	assert.True(t, c.Confirm("A"))
	assert.Equal(t, "", c.Armed())

	// Confirming needs a fresh arming afterwards.
	assert.False(t, c.Confirm("A"))
}

func TestDeleteConfirmSwitchingTargetsDisarms(t *testing.T) {
	var c DeleteConfirm

	assert.False(t, c.Confirm("A"))
	// Arming B does not confirm A and leaves B armed instead.
	assert.False(t, c.Confirm("B"))
	assert.Equal(t, "B", c.Armed())
	assert.True(t, c.Confirm("B"))
}

func TestDeleteConfirmReset(t *testing.T) {
	var c DeleteConfirm

	c.Confirm("A")
	c.Reset()
	assert.Equal(t, "", c.Armed())
	// After an outside click the next invocation arms again.
	assert.False(t, c.Confirm("A"))
}

func TestDeleteConfirmScopedPerList(t *testing.T) {
	var posts, replies DeleteConfirm

	// The same id armed in the posts list must not confirm in a reply list.
	assert.False(t, posts.Confirm("X"))
	assert.False(t, replies.Confirm("X"))
	assert.Equal(t, "X", posts.Armed())
	assert.Equal(t, "X", replies.Armed())
	assert.True(t, posts.Confirm("X"))
	assert.Equal(t, "X", replies.Armed())
}

func TestDeleteConfirmEmptyIDNeverConfirms(t *testing.T) {
	var c DeleteConfirm

	assert.False(t, c.Confirm(""))
	assert.False(t, c.Confirm(""))
}
