package models

import "strings"

// isValidEmail performs basic email validation: one @ that is neither first
// nor last, and a dot somewhere after it that does not end the address
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") > 1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot >= 0 && dot < len(domain)-1
}
