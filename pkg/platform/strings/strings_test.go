package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
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
			name:     "trims whitespace",
			input:    []string{"  Female  ", "Male  "},
			expected: []string{"Female", "Male"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"SC", "ST", "SC", "OBC", "ST"},
			expected: []string{"SC", "ST", "OBC"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"Rural", "", "  ", "Urban"},
			expected: []string{"Rural", "Urban"},
		},
		{
			name:     "preserves case",
			input:    []string{"Rural", "rural", "RURAL"},
			expected: []string{"Rural", "rural", "RURAL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitAny(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "comma", input: "SC, ST", expected: []string{"SC", "ST"}},
		{name: "mixed separators", input: "SC / ST| OBC", expected: []string{"SC", "ST", "OBC"}},
		{name: "drops empty parts", input: "Rural,,", expected: []string{"Rural"}},
		{name: "no separator", input: "Female", expected: []string{"Female"}},
		{name: "only separators", input: " , / ", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitAny(tt.input, ",/|"))
		})
	}
}

func TestSnakeToTitle(t *testing.T) {
	assert.Equal(t, "Land Holding Acres", SnakeToTitle("land_holding_acres"))
	assert.Equal(t, "Widow Required", SnakeToTitle("widow_required"))
	assert.Equal(t, "State", SnakeToTitle("state"))
	assert.Equal(t, "Age", SnakeToTitle("_age_"))
}
