package server_test

import (
	"testing"

	"baggage-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValidFamily(t *testing.T) {
	tests := []struct {
		name   string
		family string
		want   bool
	}{
		{"Ethiopian", server.FamilyEthiopian, true},
		{"Asky", server.FamilyAsky, true},
		{"AirCote", server.FamilyAircote, true},
		{"Generic", server.FamilyGeneric, true},
		{"Invalid", "invalid", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{DefaultFamily: tt.family}
			assert.Equal(t, tt.want, c.IsValidFamily())
		})
	}
}

func TestConfig_IsValidAirport(t *testing.T) {
	tests := []struct {
		name    string
		airport string
		want    bool
	}{
		{"Abidjan", "ABJ", true},
		{"Lome", "LFW", true},
		{"Lowercase", "abj", false},
		{"TooShort", "AB", false},
		{"TooLong", "ABJX", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Airport: tt.airport}
			assert.Equal(t, tt.want, c.IsValidAirport())
		})
	}
}
