package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentifierClassification(t *testing.T) {
	cases := []struct {
		name       string
		identifier string
		wantPhone  bool
	}{
		{"plain digits", "5551234567", true},
		{"international", "+15551234567", true},
		{"formatted", "(555) 123-4567", true},
		{"spaced", "555 123 4567", true},
		{"email", "jane@example.com", false},
		{"alphanumeric", "jane123", false},
		{"empty", "", false},
		{"digits with letter", "555123456x", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, isPhone := normalizeIdentifier(tc.identifier, "+1")
			require.Equal(t, tc.wantPhone, isPhone)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		code string
		want string
	}{
		{"5551234567", "+1", "+15551234567"},
		{"(555) 123-4567", "+1", "+15551234567"},
		{"+15551234567", "+1", "+15551234567"},
		{"+44 7700 900000", "+1", "+447700900000"},
		{"650 000 000", "+237", "+237650000000"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, normalizePhone(tc.in, tc.code), "input %q", tc.in)
	}
}

func TestNormalizeIdentifierLowercasesEmail(t *testing.T) {
	value, isPhone := normalizeIdentifier("  Jane@Example.COM ", "+1")
	require.False(t, isPhone)
	require.Equal(t, "jane@example.com", value)
}
