package phone

import (
	re "regexp"
	"strings"
)

// Brazilian phone: +55 + area code (2 digits) + optional 9 + 8 digits
var strictRe = re.MustCompile(`^\+55\d{2}9?\d{8}$`)

var flexibleRes = []*re.Regexp{
	re.MustCompile(`^\+55\d{2}9\d{8}$`), // +5516997184720
	re.MustCompile(`^\+55\d{2}\d{8}$`),  // +551687184720 (no 9)
	re.MustCompile(`^55\d{2}9\d{8}$`),   // 5516997184720
	re.MustCompile(`^0\d{2}9\d{8}$`),    // 016997184720
	re.MustCompile(`^\d{2}9\d{8}$`),     // 16997184720
}

var cleanRe = re.MustCompile(`[ \-().]`)
var digitsRe = re.MustCompile(`[^0-9]`)

// IsValid reports whether phone is a Brazilian number in the strict
// international form, e.g. +5516997184720.
func IsValid(phone string) bool {
	return strictRe.MatchString(phone)
}

// IsValidFlexible accepts the usual national spellings as well, with or
// without separators, country code and trunk zero.
func IsValidFlexible(phone string) bool {
	clean := cleanRe.ReplaceAllString(phone, "")

	for _, r := range flexibleRes {
		if r.MatchString(clean) {
			return true
		}
	}
	return false
}

// Format normalizes a Brazilian phone number to "+55 (AA) NNNNN-NNNN".
// Numbers that IsValidFlexible rejects are returned unchanged.
func Format(phone string) string {
	if !IsValidFlexible(phone) {
		return phone
	}
	return format(phone)
}

func format(phone string) string {
	digits := digitsRe.ReplaceAllString(phone, "")

	switch {
	// 5516997184720 -> +55 (16) 99718-4720
	case len(digits) == 13 && strings.HasPrefix(digits, "55"):
		return "+55 (" + digits[2:4] + ") " + digits[4:9] + "-" + digits[9:13]
	// 16997184720 -> +55 (16) 99718-4720
	case len(digits) == 11:
		return "+55 (" + digits[0:2] + ") " + digits[2:7] + "-" + digits[7:11]
	// 016997184720 -> +55 (16) 99718-4720
	case len(digits) == 12 && strings.HasPrefix(digits, "0"):
		return "+55 (" + digits[1:3] + ") " + digits[3:8] + "-" + digits[8:12]
	default:
		return phone
	}
}
