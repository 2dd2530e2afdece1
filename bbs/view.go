// bbs/view.go
package bbs

import (
	"html/template"
	"time"
)

// DefaultUsernameBoxColor is the username-box color used when the
// entity's author is not the acting user or has no color configured.
const DefaultUsernameBoxColor = "#1a1f2c"

// ReplyView is a reply plus the affordances the acting user gets on it.
type ReplyView struct {
	ID               string        `json:"id"`
	Author           string        `json:"author"`
	AuthorIcon       string        `json:"author_icon,omitempty"`
	Content          string        `json:"content"`
	ContentHTML      template.HTML `json:"content_html"`
	CreatedAt        time.Time     `json:"created_at"`
	EditedAt         *time.Time    `json:"edited_at,omitempty"`
	CanEdit          bool          `json:"can_edit"`
	UsernameBoxColor string        `json:"username_box_color"`
}

// PostView is a post plus per-entity render permissions.
type PostView struct {
	ID               string        `json:"id"`
	Author           string        `json:"author"`
	AuthorIcon       string        `json:"author_icon,omitempty"`
	Content          string        `json:"content"`
	ContentHTML      template.HTML `json:"content_html"`
	CreatedAt        time.Time     `json:"created_at"`
	EditedAt         *time.Time    `json:"edited_at,omitempty"`
	CanEdit          bool          `json:"can_edit"`
	CanReply         bool          `json:"can_reply"`
	UsernameBoxColor string        `json:"username_box_color"`
	Replies          []ReplyView   `json:"replies"`
}

// ChannelView is what a channel page renders from.
type ChannelView struct {
	Channel Channel    `json:"channel"`
	Posts   []PostView `json:"posts"`
	User    *User      `json:"user,omitempty"`
}

// ProjectPosts derives render models from the collection and the acting
// user. Pure: no side effects, recompute whenever either input changes.
// Edit and delete are offered only when the acting user is the author;
// replying only requires being logged in. The username box shows the
// acting user's configured color on their own entities, the default
// everywhere else.
func ProjectPosts(posts []Post, user *User) []PostView {
	views := make([]PostView, len(posts))
	for i, p := range posts {
		replies := make([]ReplyView, len(p.Replies))
		for j, r := range p.Replies {
			replies[j] = ReplyView{
				ID:               r.ID,
				Author:           r.Author,
				AuthorIcon:       r.AuthorIcon,
				Content:          r.Content,
				ContentHTML:      FormatHTML(r.Content),
				CreatedAt:        r.CreatedAt,
				EditedAt:         r.EditedAt,
				CanEdit:          canEdit(user, r.Author),
				UsernameBoxColor: boxColor(user, r.Author),
			}
		}
		views[i] = PostView{
			ID:               p.ID,
			Author:           p.Author,
			AuthorIcon:       p.AuthorIcon,
			Content:          p.Content,
			ContentHTML:      FormatHTML(p.Content),
			CreatedAt:        p.CreatedAt,
			EditedAt:         p.EditedAt,
			CanEdit:          canEdit(user, p.Author),
			CanReply:         user != nil,
			UsernameBoxColor: boxColor(user, p.Author),
			Replies:          replies,
		}
	}
	return views
}

func canEdit(user *User, author string) bool {
	return user != nil && user.Username == author
}

func boxColor(user *User, author string) string {
	if user != nil && user.Username == author && user.BoxColor != "" {
		return user.BoxColor
	}
	return DefaultUsernameBoxColor
}
