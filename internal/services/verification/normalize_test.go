package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "johnsmith", "johnsmith"},
		{"mixed case and punctuation", "Dr. John Smith", "drjohnsmith"},
		{"digits kept", "MCI-2014/123", "mci2014123"},
		{"unicode stripped", "Jöhn Smith", "jhnsmith"},
		{"empty", "", ""},
		{"only punctuation", "..//--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"Dr. John Smith", "MCI/2014-123", "  spaced  out  ", "already clean"}
	for _, in := range inputs {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once))
	}
}

func TestNormalizeNumber(t *testing.T) {
	assert.Equal(t, "2014123", NormalizeNumber("MCI-2014/123"))
	assert.Equal(t, "", NormalizeNumber("no digits here"))
	assert.Equal(t, "42", NormalizeNumber("42"))
}

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		expect bool
	}{
		{"identical", "John Smith", "John Smith", true},
		{"title prefix", "Dr. John Smith", "John Smith", true},
		{"reverse containment", "John Smith", "Dr. John Smith MD", true},
		{"initial does not match", "J Smith", "Dr. John Smith", false},
		{"different people", "John Smith", "Jane Doe", false},
		{"empty left", "", "John Smith", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, namesMatch(tt.a, tt.b))
		})
	}
}
