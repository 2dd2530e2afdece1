package bbs

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is the identity consumed by the board. Username is the
// author-match key for edit/delete authorization. IconURL and BoxColor
// are presentation preferences owned by the profile, snapshotted onto
// posts at creation time.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	IconURL  string    `json:"icon_url,omitempty"`
	BoxColor string    `json:"box_color,omitempty"`
	Hash     []byte    `json:"hash,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Admin    bool      `json:"admin"`
}

func NewUser(username string, admin bool) *User {
	now := time.Now().UTC()
	return &User{
		ID:       uuid.New().String(),
		Username: username,
		Created:  now,
		Updated:  now,
		Admin:    admin,
	}
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}
	u.Hash = hash
	return nil
}

func (u *User) PasswordMatches(input string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(u.Hash, []byte(input))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}
	return true, nil
}

// Sanitize strips credential material before the user leaves the
// trust boundary.
func (u *User) Sanitize() {
	u.Hash = nil
}

func (u *User) MarshalBinary() ([]byte, error) {
	return json.Marshal(u)
}

func (u *User) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, u)
}
