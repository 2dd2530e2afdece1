// bbs/handlers.go
package bbs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
)

// UserDirectory resolves usernames to users. The Database implements
// it; tests substitute a stub.
type UserDirectory interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

type Handlers struct {
	users   UserDirectory
	port    PersistencePort
	cache   *Cache
	Session *scs.SessionManager

	mu     sync.Mutex
	stores map[string]*PostStore
}

// NewHandlers wires the board's HTTP surface. cache may be nil; it only
// short-circuits user lookups.
func NewHandlers(users UserDirectory, port PersistencePort, cache *Cache) *Handlers {
	session := scs.New()
	session.Lifetime = 24 * time.Hour
	return &Handlers{
		users:   users,
		port:    port,
		cache:   cache,
		Session: session,
		stores:  make(map[string]*PostStore),
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/channels", h.listChannels)
	mux.HandleFunc("/channels/", h.channelRoutes)
	mux.HandleFunc("/session", h.sessionRoutes)
}

// store returns the lazily-constructed PostStore for a registered
// channel, or nil for an unknown key.
func (h *Handlers) store(ctx context.Context, channelKey string) (*PostStore, error) {
	if _, ok := ChannelByKey(channelKey); !ok {
		return nil, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.stores[channelKey]; ok {
		return s, nil
	}
	s, err := NewPostStore(ctx, channelKey, h.port)
	if err != nil {
		return nil, err
	}
	h.stores[channelKey] = s
	return s, nil
}

// currentUser resolves the acting user from the scs session, checking
// the redis cache before the directory. Returns nil when nobody is
// logged in. The returned user is sanitized.
func (h *Handlers) currentUser(r *http.Request) *User {
	username := h.Session.GetString(r.Context(), "username")
	if username == "" {
		return nil
	}
	if h.cache != nil {
		if user, err := h.cache.GetUser(r.Context(), username); err == nil && user != nil {
			user.Sanitize()
			return user
		}
	}
	user, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		log.Printf("Error resolving session user %q: %v", username, err)
		return nil
	}
	if user == nil {
		return nil
	}
	if h.cache != nil {
		if err := h.cache.CacheUser(r.Context(), user); err != nil {
			log.Printf("Error caching user %q: %v", username, err)
		}
	}
	out := *user
	out.Sanitize()
	return &out
}

// listChannels serves the fixed channel registry.
func (h *Handlers) listChannels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, Channels())
}

// channelRoutes dispatches everything under /channels/{key}.
func (h *Handlers) channelRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/channels/")
	parts := strings.Split(path, "/")

	store, err := h.store(r.Context(), parts[0])
	if err != nil {
		log.Printf("Error opening channel %q: %v", parts[0], err)
		http.Error(w, "Failed to load channel", http.StatusInternalServerError)
		return
	}
	if store == nil {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.showChannel(w, r, store)
	case len(parts) == 2 && parts[1] == "posts":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.createPost(w, r, store)
	case len(parts) == 3 && parts[1] == "posts":
		h.postByID(w, r, store, parts[2])
	case len(parts) == 4 && parts[1] == "posts" && parts[3] == "replies":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.addReply(w, r, store, parts[2])
	case len(parts) == 5 && parts[1] == "posts" && parts[3] == "replies":
		h.replyByID(w, r, store, parts[2], parts[4])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handlers) showChannel(w http.ResponseWriter, r *http.Request, store *PostStore) {
	channel, _ := ChannelByKey(store.ChannelID())
	user := h.currentUser(r)
	view := ChannelView{
		Channel: channel,
		Posts:   ProjectPosts(store.Posts(), user),
		User:    user,
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) createPost(w http.ResponseWriter, r *http.Request, store *PostStore) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	post, err := store.CreatePost(r.Context(), h.currentUser(r), body.Content)
	h.writeMutation(w, post, err)
}

func (h *Handlers) postByID(w http.ResponseWriter, r *http.Request, store *PostStore, postID string) {
	user := h.currentUser(r)
	actingUsername := ""
	if user != nil {
		actingUsername = user.Username
	}
	switch r.Method {
	case http.MethodPut:
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		post, err := store.EditPost(r.Context(), postID, body.Content, actingUsername)
		h.writeMutation(w, post, err)
	case http.MethodDelete:
		err := store.DeletePost(r.Context(), postID, actingUsername)
		h.writeMutation(w, map[string]string{"id": postID}, err)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handlers) addReply(w http.ResponseWriter, r *http.Request, store *PostStore, postID string) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	reply, err := store.AddReply(r.Context(), postID, h.currentUser(r), body.Content)
	h.writeMutation(w, reply, err)
}

func (h *Handlers) replyByID(w http.ResponseWriter, r *http.Request, store *PostStore, postID, replyID string) {
	user := h.currentUser(r)
	actingUsername := ""
	if user != nil {
		actingUsername = user.Username
	}
	switch r.Method {
	case http.MethodPut:
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		reply, err := store.EditReply(r.Context(), postID, replyID, body.Content, actingUsername)
		h.writeMutation(w, reply, err)
	case http.MethodDelete:
		err := store.DeleteReply(r.Context(), postID, replyID, actingUsername)
		h.writeMutation(w, map[string]string{"id": replyID}, err)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// sessionRoutes is the thin identity boundary: POST attaches a session
// after verifying the password, DELETE detaches, GET reports the
// acting user. Registration and profile management belong to the
// external auth collaborator.
func (h *Handlers) sessionRoutes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]*User{"user": h.currentUser(r)})
	case http.MethodPost:
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		user, err := h.users.GetUserByUsername(r.Context(), body.Username)
		if err != nil {
			log.Printf("Error looking up user %q: %v", body.Username, err)
			http.Error(w, "Failed to look up user", http.StatusInternalServerError)
			return
		}
		if user == nil {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		ok, err := user.PasswordMatches(body.Password)
		if err != nil || !ok {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		if err := h.Session.RenewToken(r.Context()); err != nil {
			log.Printf("Error renewing session token: %v", err)
			http.Error(w, "Failed to start session", http.StatusInternalServerError)
			return
		}
		h.Session.Put(r.Context(), "username", user.Username)
		out := *user
		out.Sanitize()
		writeJSON(w, http.StatusOK, map[string]*User{"user": &out})
	case http.MethodDelete:
		if err := h.Session.Destroy(r.Context()); err != nil {
			log.Printf("Error destroying session: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeMutation reports a store operation's outcome. Persistence
// failures keep the optimistic local state, so the response carries the
// result with synced=false instead of an error status.
func (h *Handlers) writeMutation(w http.ResponseWriter, result any, err error) {
	if err != nil {
		var saveErr *SaveError
		if errors.As(err, &saveErr) {
			log.Printf("Persistence write failed, local state kept: %v", saveErr)
			writeJSON(w, http.StatusOK, map[string]any{"result": result, "synced": false})
			return
		}
		http.Error(w, err.Error(), statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result, "synced": true})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, ErrPostNotFound), errors.Is(err, ErrReplyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
