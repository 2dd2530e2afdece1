// bbs/store.go
package bbs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// PersistencePort is the sole gateway between a channel's post
// collection and durable storage. Load returns an empty collection when
// nothing is stored; unreadable or malformed stored data is discarded
// by the implementation, never surfaced as an error. Save persists the
// whole collection snapshot for the channel.
type PersistencePort interface {
	Load(ctx context.Context, channelID string) ([]Post, error)
	Save(ctx context.Context, channelID string, posts []Post) error
}

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyContent     = errors.New("content is empty")
	ErrPostNotFound     = errors.New("post not found")
	ErrReplyNotFound    = errors.New("reply not found")
	ErrNotAuthor        = errors.New("acting user is not the author")
)

// SaveError reports a failed write-through. The local mutation it
// accompanies has already been applied and is kept; the entity's Sync
// status is Failed until a later save or a full reload reconciles it.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("persistence write failed: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// PostStore owns one channel's post collection. Top-level posts are
// kept newest-first; each post's replies are kept oldest-first. All
// mutations serialize through the store's lock, so state changes are
// atomic with respect to callers, and every mutation writes the full
// snapshot through the PersistencePort before returning.
//
// Mutations are optimistic: the in-memory change is applied first and
// kept even when the write-through fails.
type PostStore struct {
	mu        sync.Mutex
	channelID string
	posts     []Post
	port      PersistencePort
	ids       *IDGenerator
	now       func() time.Time
}

// NewPostStore loads the channel's saved collection through the port.
// A transport failure on the initial load is returned; unreadable
// stored data is the port's problem and arrives here as an empty
// collection.
func NewPostStore(ctx context.Context, channelID string, port PersistencePort) (*PostStore, error) {
	posts, err := port.Load(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("loading channel %s: %w", channelID, err)
	}
	return &PostStore{
		channelID: channelID,
		posts:     sanitizePosts(posts),
		port:      port,
		ids:       NewIDGenerator(nil),
		now:       time.Now,
	}, nil
}

// ChannelID returns the channel this store owns.
func (s *PostStore) ChannelID() string {
	return s.channelID
}

// Posts returns a copy of the collection, newest-first.
func (s *PostStore) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyPosts(s.posts)
}

// Len returns the number of top-level posts.
func (s *PostStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// Get returns a copy of one post by id.
func (s *PostStore) Get(postID string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(postID); i >= 0 {
		return copyPost(s.posts[i]), true
	}
	return Post{}, false
}

// CreatePost validates and prepends a new post authored by user. The
// author name and icon are snapshotted from the user. Rejected with no
// state change when user is nil or the trimmed content is empty.
func (s *PostStore) CreatePost(ctx context.Context, user *User, content string) (Post, error) {
	if user == nil {
		return Post{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(content) == "" {
		return Post{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := Post{
		ID:         s.ids.Next(),
		Content:    content,
		Author:     user.Username,
		AuthorIcon: user.IconURL,
		CreatedAt:  s.now(),
		Replies:    []Reply{},
	}
	s.posts = append([]Post{post}, s.posts...)
	err := s.persistLocked(ctx, &s.posts[0].Sync)
	return copyPost(s.posts[0]), err
}

// EditPost replaces the post's content with the trimmed input and
// stamps EditedAt. Only the author may edit.
func (s *PostStore) EditPost(ctx context.Context, postID, newContent, actingUsername string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return Post{}, ErrPostNotFound
	}
	post := &s.posts[i]
	if post.Author != actingUsername {
		return Post{}, ErrNotAuthor
	}
	trimmed := strings.TrimSpace(newContent)
	if trimmed == "" {
		return Post{}, ErrEmptyContent
	}

	post.Content = trimmed
	editedAt := s.now()
	post.EditedAt = &editedAt
	err := s.persistLocked(ctx, &post.Sync)
	return copyPost(*post), err
}

// DeletePost removes the post and its replies. A missing id is a
// silent no-op; an author mismatch is rejected.
func (s *PostStore) DeletePost(ctx context.Context, postID, actingUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return nil
	}
	if s.posts[i].Author != actingUsername {
		return ErrNotAuthor
	}

	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return s.persistLocked(ctx, nil)
}

// AddReply appends a reply to the named post. Replies are kept in call
// order, oldest first, the opposite of the top-level ordering.
func (s *PostStore) AddReply(ctx context.Context, postID string, user *User, content string) (Reply, error) {
	if user == nil {
		return Reply{}, ErrNotAuthenticated
	}
	if strings.TrimSpace(content) == "" {
		return Reply{}, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return Reply{}, ErrPostNotFound
	}
	reply := Reply{
		ID:         s.ids.Next(),
		Content:    content,
		Author:     user.Username,
		AuthorIcon: user.IconURL,
		CreatedAt:  s.now(),
	}
	post := &s.posts[i]
	post.Replies = append(post.Replies, reply)
	err := s.persistLocked(ctx, &post.Replies[len(post.Replies)-1].Sync)
	return post.Replies[len(post.Replies)-1], err
}

// EditReply edits one reply under the named post, author-only, trimmed
// content, EditedAt stamped.
func (s *PostStore) EditReply(ctx context.Context, postID, replyID, newContent, actingUsername string) (Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return Reply{}, ErrPostNotFound
	}
	post := &s.posts[i]
	j := replyIndex(post.Replies, replyID)
	if j < 0 {
		return Reply{}, ErrReplyNotFound
	}
	reply := &post.Replies[j]
	if reply.Author != actingUsername {
		return Reply{}, ErrNotAuthor
	}
	trimmed := strings.TrimSpace(newContent)
	if trimmed == "" {
		return Reply{}, ErrEmptyContent
	}

	reply.Content = trimmed
	editedAt := s.now()
	reply.EditedAt = &editedAt
	err := s.persistLocked(ctx, &reply.Sync)
	return *reply, err
}

// DeleteReply removes exactly the matching reply from the parent's
// sequence. Missing post or reply ids are silent no-ops.
func (s *PostStore) DeleteReply(ctx context.Context, postID, replyID, actingUsername string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(postID)
	if i < 0 {
		return nil
	}
	post := &s.posts[i]
	j := replyIndex(post.Replies, replyID)
	if j < 0 {
		return nil
	}
	if post.Replies[j].Author != actingUsername {
		return ErrNotAuthor
	}

	post.Replies = append(post.Replies[:j], post.Replies[j+1:]...)
	return s.persistLocked(ctx, nil)
}

// Reload discards local state and loads the channel snapshot again.
// This is the reconciliation path after a failed write-through.
func (s *PostStore) Reload(ctx context.Context) error {
	posts, err := s.port.Load(ctx, s.channelID)
	if err != nil {
		return fmt.Errorf("loading channel %s: %w", s.channelID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = sanitizePosts(posts)
	return nil
}

// persistLocked writes the full collection snapshot through the port,
// tracking the outcome on the given entity's sync status when one is
// in play (deletions have no surviving entity to mark).
func (s *PostStore) persistLocked(ctx context.Context, status *SyncStatus) error {
	if status != nil {
		*status = SyncPending
	}
	if err := s.port.Save(ctx, s.channelID, copyPosts(s.posts)); err != nil {
		if status != nil {
			*status = SyncFailed
		}
		return &SaveError{Err: err}
	}
	if status != nil {
		*status = SyncSynced
	}
	return nil
}

func (s *PostStore) indexLocked(postID string) int {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			return i
		}
	}
	return -1
}

func replyIndex(replies []Reply, replyID string) int {
	for i := range replies {
		if replies[i].ID == replyID {
			return i
		}
	}
	return -1
}
