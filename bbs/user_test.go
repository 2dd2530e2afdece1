package bbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	u := NewUser("carol", false)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "carol", u.Username)
	assert.False(t, u.Created.IsZero())
	assert.Equal(t, u.Created, u.Updated)
	assert.False(t, u.Admin)

	other := NewUser("dave", true)
	assert.NotEqual(t, u.ID, other.ID)
	assert.True(t, other.Admin)
}

func TestPasswordRoundTrip(t *testing.T) {
	u := NewUser("carol", false)
	require.NoError(t, u.SetPassword("hunter2"))

	ok, err := u.PasswordMatches("hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = u.PasswordMatches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSanitizeStripsHash(t *testing.T) {
	u := NewUser("carol", false)
	u.Hash = []byte("not a real hash")
	u.Sanitize()
	assert.Nil(t, u.Hash)
}

func TestUserBinaryRoundTrip(t *testing.T) {
	u := NewUser("carol", false)
	u.IconURL = "https://example.com/c.png"
	u.BoxColor = "#abcdef"

	raw, err := u.MarshalBinary()
	require.NoError(t, err)

	var got User
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Username, got.Username)
	assert.Equal(t, u.IconURL, got.IconURL)
	assert.Equal(t, u.BoxColor, got.BoxColor)
}
