// bbs/db.go
package bbs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Channel collections are persisted as whole snapshots, matching the
// PersistencePort contract, so each channel is one JSONB row.
const schema = `
CREATE TABLE IF NOT EXISTS channel_snapshots (
    channel_id TEXT PRIMARY KEY,
    posts JSONB NOT NULL DEFAULT '[]',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    hash BYTEA,
    icon_url TEXT NOT NULL DEFAULT '',
    box_color TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    admin BOOLEAN NOT NULL DEFAULT FALSE
);
`

type Database struct {
	pool *pgxpool.Pool
}

func NewDatabase(connectionString string) (*Database, error) {
	pool, err := pgxpool.New(context.Background(), connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Database{pool: pool}, nil
}

func (d *Database) CreateTables() error {
	_, err := d.pool.Exec(context.Background(), schema)
	return err
}

// --- Snapshot Functions (PersistencePort) ---

// Load returns the saved post collection for a channel. No row means an
// empty collection, and so does a snapshot that fails to unmarshal:
// corrupt stored data is discarded, not surfaced.
func (d *Database) Load(ctx context.Context, channelID string) ([]Post, error) {
	var raw []byte
	query := `SELECT posts FROM channel_snapshots WHERE channel_id = $1`
	err := d.pool.QueryRow(ctx, query, channelID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []Post{}, nil
		}
		return nil, err
	}
	var posts []Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		log.Printf("discarding unreadable snapshot for channel %s: %v", channelID, err)
		return []Post{}, nil
	}
	return posts, nil
}

// Save upserts the full collection snapshot for a channel.
func (d *Database) Save(ctx context.Context, channelID string, posts []Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	query := `
        INSERT INTO channel_snapshots (channel_id, posts, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (channel_id) DO UPDATE SET
            posts = EXCLUDED.posts,
            updated_at = EXCLUDED.updated_at;
    `
	_, err = d.pool.Exec(ctx, query, channelID, raw)
	return err
}

// --- User Functions ---

func (d *Database) SaveUser(user *User) error {
	query := `
        INSERT INTO users (id, username, hash, icon_url, box_color, created_at, updated_at, admin)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (username) DO UPDATE SET
            hash = EXCLUDED.hash,
            icon_url = EXCLUDED.icon_url,
            box_color = EXCLUDED.box_color,
            updated_at = EXCLUDED.updated_at,
            admin = EXCLUDED.admin;
    `
	_, err := d.pool.Exec(context.Background(), query,
		user.ID,
		user.Username,
		user.Hash,
		user.IconURL,
		user.BoxColor,
		user.Created,
		user.Updated,
		user.Admin,
	)
	return err
}

func (d *Database) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `
        SELECT id, username, hash, icon_url, box_color, created_at, updated_at, admin
        FROM users
        WHERE username = $1`
	row := d.pool.QueryRow(ctx, query, username)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Hash,
		&user.IconURL,
		&user.BoxColor,
		&user.Created,
		&user.Updated,
		&user.Admin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	query := `
        SELECT id, username, hash, icon_url, box_color, created_at, updated_at, admin
        FROM users
        WHERE id = $1`
	row := d.pool.QueryRow(ctx, query, id)
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Hash,
		&user.IconURL,
		&user.BoxColor,
		&user.Created,
		&user.Updated,
		&user.Admin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
