// bbs/identity.go
package bbs

import "sync"

// Identity reports the acting user, or nil when nobody is logged in.
type Identity interface {
	CurrentUser() *User
}

// Session is an in-process Identity with change subscription: the auth
// collaborator pushes the new user through Set and every subscriber is
// notified, so consumers recompute projections instead of polling.
type Session struct {
	mu   sync.Mutex
	user *User
	subs []func(*User)
}

func (s *Session) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Set replaces the current user (nil on logout) and notifies
// subscribers outside the lock.
func (s *Session) Set(user *User) {
	s.mu.Lock()
	s.user = user
	subs := make([]func(*User), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(user)
	}
}

// Subscribe registers a callback for session changes.
func (s *Session) Subscribe(fn func(*User)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
