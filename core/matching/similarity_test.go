package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"Equal", "1234567890", "1234567890", 100},
		{"One Substitution Over Ten", "1234567890", "1234567891", 90},
		{"One Substitution Over Twelve", "AB1234567890", "AB1234567891", 91},
		{"Completely Different", "AAAA", "ZZZZ", 0},
		{"Empty Left", "", "ABC", 0},
		{"Empty Right", "ABC", "", 0},
		{"Both Empty", "", "", 100},
		{"Insertion", "MARTIN", "MARTINS", 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Similarity(tt.a, tt.b))
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"1234567890", "1234567891"},
		{"MARTIN/JEAN", "MARTIN/JEANNE"},
		{"ABC", "XYZ"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}
