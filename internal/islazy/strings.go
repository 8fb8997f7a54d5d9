package islazy

import "strconv"

// FormatInt64Comma renders 1234567 as "1,234,567".
func FormatInt64Comma(v int64) string {
	s := strconv.FormatInt(v, 10)

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	out := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}

	if neg {
		return "-" + out
	}
	return out
}

// FormatIntComma renders an int with thousand separators.
func FormatIntComma(v int) string {
	return FormatInt64Comma(int64(v))
}

// SliceHasStr reports whether slice contains value.
func SliceHasStr(slice []string, value string) bool {
	for _, s := range slice {
		if s == value {
			return true
		}
	}
	return false
}
