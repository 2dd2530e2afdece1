// bbs/models.go
package bbs

import (
	"time"
)

// SyncStatus tracks whether an entity's last local mutation has been
// confirmed by the persistence layer. Local state is updated before the
// write-through completes, so a failed save leaves the entity diverged
// from durable storage until the next full load.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// Post is a top-level authored item in a channel. Author and AuthorIcon
// are snapshots taken at creation time, not live links to the profile.
type Post struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	AuthorIcon string     `json:"author_icon,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	Replies    []Reply    `json:"replies"`
	Sync       SyncStatus `json:"-"`
}

// Reply is a second-level item attached to exactly one post. Replies
// are not nestable.
type Reply struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Author     string     `json:"author"`
	AuthorIcon string     `json:"author_icon,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	EditedAt   *time.Time `json:"edited_at,omitempty"`
	Sync       SyncStatus `json:"-"`
}

// sanitizePosts validates a loaded snapshot, dropping records that are
// missing an id, an author, or a creation time. An EditedAt stamp that
// predates CreatedAt is cleared rather than propagated. Stored data of
// any vintage is migrated through here so malformed records never reach
// the render path.
func sanitizePosts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.ID == "" || p.Author == "" || p.CreatedAt.IsZero() {
			continue
		}
		if p.EditedAt != nil && p.EditedAt.Before(p.CreatedAt) {
			p.EditedAt = nil
		}
		replies := make([]Reply, 0, len(p.Replies))
		for _, r := range p.Replies {
			if r.ID == "" || r.Author == "" || r.CreatedAt.IsZero() {
				continue
			}
			if r.EditedAt != nil && r.EditedAt.Before(r.CreatedAt) {
				r.EditedAt = nil
			}
			r.Sync = SyncSynced
			replies = append(replies, r)
		}
		p.Replies = replies
		p.Sync = SyncSynced
		out = append(out, p)
	}
	return out
}

func copyPost(p Post) Post {
	replies := make([]Reply, len(p.Replies))
	copy(replies, p.Replies)
	p.Replies = replies
	return p
}

func copyPosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	for i, p := range posts {
		out[i] = copyPost(p)
	}
	return out
}
