package sign

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)

	token := s.Sign("story-1", "LIKE")
	storyID, action, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "story-1", storyID)
	assert.Equal(t, "LIKE", action)
}

func TestSigner_TamperedToken(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	token := s.Sign("story-1", "LIKE")

	t.Run("modified payload", func(t *testing.T) {
		other := s.Sign("story-2", "LIKE")
		otherPayload := strings.SplitN(other, ".", 2)[0]
		mac := strings.SplitN(token, ".", 2)[1]
		_, _, err := s.Verify(otherPayload + "." + mac)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("modified mac", func(t *testing.T) {
		_, _, err := s.Verify(token + "x")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSigner("other-secret", time.Hour)
		_, _, err := other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, _, err := s.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, _, err = s.Verify("!!!.???")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSigner_Expiry(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token := s.Sign("story-1", "DISLIKE")

	// still valid just before expiry
	s.now = func() time.Time { return now.Add(59 * time.Minute) }
	_, _, err := s.Verify(token)
	require.NoError(t, err)

	// expired after the ttl
	s.now = func() time.Time { return now.Add(61 * time.Minute) }
	_, _, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestSigner_DefaultTTL(t *testing.T) {
	s := NewSigner("test-secret", 0)
	assert.Equal(t, 168*time.Hour, s.ttl)
}
