package session

import "strings"

// phoneFormatting is the set of characters tolerated inside a phone
// identifier besides digits and the leading plus.
const phoneFormatting = " -()"

// isPhoneIdentifier reports whether the identifier should be treated as a
// phone number: only digits and formatting characters, with at least one
// digit. Anything else is an email.
func isPhoneIdentifier(identifier string) bool {
	hasDigit := false
	for _, r := range identifier {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || strings.ContainsRune(phoneFormatting, r):
		default:
			return false
		}
	}
	return hasDigit
}

// normalizePhone strips formatting characters and prefixes the default
// country code when the number carries none.
func normalizePhone(identifier, defaultCountryCode string) string {
	var b strings.Builder
	for _, r := range identifier {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return num
	}
	if !strings.HasPrefix(num, "+") {
		num = defaultCountryCode + num
	}
	return num
}

// normalizeIdentifier classifies and canonicalizes a login identifier.
// Emails are trimmed and lowercased; phones are normalized per above.
func normalizeIdentifier(identifier, defaultCountryCode string) (value string, isPhone bool) {
	identifier = strings.TrimSpace(identifier)
	if isPhoneIdentifier(identifier) {
		return normalizePhone(identifier, defaultCountryCode), true
	}
	return strings.ToLower(identifier), false
}
