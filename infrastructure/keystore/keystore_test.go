package keystore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"blogspace-client/infrastructure/keystore"
)

func TestRoundTrip(t *testing.T) {
	s := keystore.New(t.TempDir(), zap.NewNop())

	assert.Empty(t, s.Get("access_token"))

	s.Set("access_token", "abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", s.Get("access_token"))

	s.Delete("access_token")
	assert.Empty(t, s.Get("access_token"))
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	first := keystore.New(dir, zap.NewNop())
	first.Set("refresh_token", "r-123")

	second := keystore.New(dir, zap.NewNop())
	assert.Equal(t, "r-123", second.Get("refresh_token"))
}

func TestDeleteMissingIsHarmless(t *testing.T) {
	s := keystore.New(t.TempDir(), zap.NewNop())
	s.Delete("never_set")
	assert.Empty(t, s.Get("never_set"))
}
