package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewHasher(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		wantErr bool
	}{
		{name: "default cost", cost: DefaultCost},
		{name: "min cost", cost: bcrypt.MinCost},
		{name: "below min", cost: bcrypt.MinCost - 1, wantErr: true},
		{name: "above max", cost: bcrypt.MaxCost + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHasher(tt.cost)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, h)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, h)
		})
	}
}

func TestHash(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "unicode password", password: "пароль-секрет"},
		{name: "short password", password: "secret1"},
		{name: "max length password", password: strings.Repeat("a", MaxLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_TooLong(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash(strings.Repeat("a", MaxLength+1))
	assert.ErrorIs(t, err, ErrTooLong)
	assert.Empty(t, hash)
}

func TestHash_UsesConfiguredCost(t *testing.T) {
	h, err := NewHasher(DefaultCost)
	require.NoError(t, err)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestHash_SamePasswordDifferentSalt(t *testing.T) {
	h := newTestHasher(t)

	hash1, err := h.Hash("secret1")
	require.NoError(t, err)
	hash2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, h.Verify("secret1", hash1))
	assert.True(t, h.Verify("secret1", hash2))
}

func TestVerify(t *testing.T) {
	h := newTestHasher(t)

	correctHash, err := h.Hash("correct_password")
	require.NoError(t, err)
	anotherHash, err := h.Hash("another_password")
	require.NoError(t, err)

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{name: "matching password", hash: correctHash, password: "correct_password", shouldMatch: true},
		{name: "wrong password", hash: correctHash, password: "wrong_password"},
		{name: "hash of other password", hash: anotherHash, password: "correct_password"},
		{name: "empty password", hash: correctHash, password: ""},
		{name: "empty hash", hash: "", password: "correct_password"},
		{name: "malformed hash", hash: "$2a$10$not-a-real-hash", password: "correct_password"},
		{name: "plaintext stored as hash", hash: "correct_password", password: "correct_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.shouldMatch, h.Verify(tt.password, tt.hash))
			})
		})
	}
}
