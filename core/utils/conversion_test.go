package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"Int One", 1, true},
		{"Int Zero", 0, false},
		{"Int64 One", int64(1), true},
		{"String One", "1", true},
		{"String True", "true", true},
		{"String TRUE", "TRUE", true},
		{"String Zero", "0", false},
		{"Bool", true, true},
		{"Bytes", []byte("1"), true},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(tt.val))
		})
	}
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want float64
	}{
		{"Plain", "15", 15},
		{"Decimal", "15.5", 15.5},
		{"Comma Decimal", "15,5", 15.5},
		{"Padded", "  23 ", 23},
		{"Garbage", "abc", 0},
		{"Float", 12.5, 12.5},
		{"Int", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.val))
		})
	}
}
