package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub/internal/utils"
)

func TestGenerateRandomToken(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := utils.GenerateRandomToken(32)
		require.NoError(t, err)
		assert.NotContains(t, token, "=")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "+")
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestHashToken(t *testing.T) {
	t.Parallel()

	hash := utils.HashToken("tok-1")
	assert.Equal(t, hash, utils.HashToken("tok-1"))
	assert.NotEqual(t, hash, utils.HashToken("tok-2"))
	assert.NotEqual(t, "tok-1", hash)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ada@example.com", utils.NormalizeEmail("  Ada@Example.COM "))
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"spaces", "Acme Rockets Inc", "acme-rockets-inc"},
		{"punctuation", "Acme, Rockets & Co.", "acme-rockets-co"},
		{"leading and trailing junk", "  --Acme--  ", "acme"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.Slugify(tt.in))
		})
	}
}
