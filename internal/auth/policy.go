package auth

import "unicode"

// IsAcceptablePassword reports whether a password satisfies the strength
// policy: at least 8 characters containing an uppercase letter, a lowercase
// letter, a digit and a character that is neither letter nor digit.
func IsAcceptablePassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasOther = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasOther
}
