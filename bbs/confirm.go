// bbs/confirm.go
package bbs

// DeleteConfirm is the two-step delete arming window: the first
// invocation on an id arms it, a second consecutive invocation on the
// same id confirms. Arming a different id disarms the previous one, and
// Reset models a click outside the control. One DeleteConfirm is scoped
// to one list (top-level posts, or one post's replies) so an armed post
// id can never confirm a reply with a colliding id.
type DeleteConfirm struct {
	armed string
}

// Confirm advances the machine for id. It returns true only when id was
// already armed, disarming it; otherwise it arms id and returns false.
func (c *DeleteConfirm) Confirm(id string) bool {
	if id != "" && c.armed == id {
		c.armed = ""
		return true
	}
	c.armed = id
	return false
}

// Armed returns the currently armed id, empty when idle.
func (c *DeleteConfirm) Armed() string {
	return c.armed
}

// Reset disarms without confirming.
func (c *DeleteConfirm) Reset() {
	c.armed = ""
}
