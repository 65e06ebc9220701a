package catalog

import "strings"

// NormalizeISBN strips separators and noise from user-supplied ISBNs,
// keeping digits and a trailing X. A bare 9-digit SBN core is completed
// with its ISBN-10 check digit.
func NormalizeISBN(isbn string) string {
	s := strings.ToUpper(strings.TrimSpace(isbn))
	core := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' || r == 'X' {
			core = append(core, r)
		}
	}
	digitsOnly := true
	for _, r := range core {
		if r < '0' || r > '9' {
			digitsOnly = false
			break
		}
	}
	if len(core) == 9 && digitsOnly {
		return string(core) + isbn10CheckDigit(string(core))
	}
	return string(core)
}

// isbn10CheckDigit computes the check digit for a 9-digit core, returning
// "0"-"9" or "X".
func isbn10CheckDigit(s string) string {
	sum := 0
	for i, ch := range s {
		sum += (i + 1) * int(ch-'0')
	}
	cd := sum % 11
	if cd == 10 {
		return "X"
	}
	return string(rune('0' + cd))
}
