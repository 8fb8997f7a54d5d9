package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fixed replacement table for the Portuguese/Spanish accented letters.
// Runes outside the table are kept as-is on purpose.
var accentTable = map[rune]rune{
	'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c',
	'ñ': 'n',
	'Á': 'A', 'À': 'A', 'Ã': 'A', 'Â': 'A', 'Ä': 'A',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I',
	'Ó': 'O', 'Ò': 'O', 'Õ': 'O', 'Ô': 'O', 'Ö': 'O',
	'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U',
	'Ç': 'C',
	'Ñ': 'N',
}

var slugStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// RemoveAccents replaces accented letters with their plain ASCII
// counterpart using the fixed table above.
func RemoveAccents(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if p, ok := accentTable[r]; ok {
			sb.WriteRune(p)
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// TitleCase upper-cases the first letter of each whitespace separated word
// and lower-cases the remainder. Words are re-joined with a single space.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}

// PigLatin moves the first rune of s to the end and appends "ay".
// The empty string stays empty.
func PigLatin(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[1:]) + string(r[0]) + "ay"
}

// Slug lowers s, strips every combining mark (not just the fixed table) and
// squashes anything non alphanumeric into single underscores. Used to match
// user supplied column names against CSV headers.
func Slug(s string) string {
	stripped, _, err := transform.String(slugStripper, s)
	if err != nil {
		stripped = s
	}

	var sb strings.Builder
	lastUnder := true
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastUnder = false
		} else if !lastUnder {
			sb.WriteByte('_')
			lastUnder = true
		}
	}
	return strings.Trim(sb.String(), "_")
}
