package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: nil,
		},
		{
			name:     "only blanks collapse to nil",
			input:    []string{"", "   "},
			expected: nil,
		},
		{
			name:     "trims whitespace",
			input:    []string{"  Getting lost  ", "Stolen  "},
			expected: []string{"Getting lost", "Stolen"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"Dog", "Cat", "Dog", "other"},
			expected: []string{"Dog", "Cat", "other"},
		},
		{
			name:     "preserves case",
			input:    []string{"Dog", "dog"},
			expected: []string{"Dog", "dog"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTags(tt.input))
		})
	}
}

func TestContainsTag(t *testing.T) {
	values := []string{"Dog", "Cat"}
	assert.True(t, ContainsTag(values, "Cat"))
	assert.False(t, ContainsTag(values, "cat"))
	assert.False(t, ContainsTag(nil, "Dog"))
}

func TestRemoveTag(t *testing.T) {
	assert.Equal(t, []string{"Dog"}, RemoveTag([]string{"Dog", "Cat"}, "Cat"))
	assert.Empty(t, RemoveTag([]string{"Cat"}, "Cat"))
}
