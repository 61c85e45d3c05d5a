package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHexID(t *testing.T) {
	for _, length := range []int{32, 64} {
		id, err := GenerateHexID(length)
		require.NoError(t, err)
		assert.Len(t, id, length)
		assert.True(t, IsHexID(id, length))
		assert.Regexp(t, "^[0-9A-F]+$", id)
	}
}

func TestGenerateHexIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := GenerateHexID(32)
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestGenerateHexIDRejectsOddLength(t *testing.T) {
	_, err := GenerateHexID(31)
	assert.Error(t, err)
	_, err = GenerateHexID(0)
	assert.Error(t, err)
}

func TestIsHexID(t *testing.T) {
	tests := []struct {
		in     string
		length int
		want   bool
	}{
		{"ABCDEF0123456789", 16, true},
		{"abcdef0123456789", 16, true},
		{"ABCDEF012345678", 16, false},
		{"XYZDEF0123456789", 16, false},
		{"", 16, false},
	}
	for _, tt := range tests {
		if got := IsHexID(tt.in, tt.length); got != tt.want {
			t.Errorf("IsHexID(%q, %d) = %v, want %v", tt.in, tt.length, got, tt.want)
		}
	}
}
