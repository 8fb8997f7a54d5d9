package brdoc

import (
	"strings"
)

// Kind is the document classification of a digit sequence
type Kind int

const (
	KindNone Kind = iota
	KindCPF
	KindCNPJ
)

const (
	cpfLen  = 11
	cnpjLen = 14
)

// Weight tables for the CNPJ check digits
var cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
var cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

func (k Kind) String() string {
	switch k {
	case KindCPF:
		return "CPF"
	case KindCNPJ:
		return "CNPJ"
	default:
		return ""
	}
}

// Digits returns the ordered ASCII decimal digits of s, as integers.
// Every other rune is dropped.
func Digits(s string) []int {
	out := make([]int, 0, len(s))
	for _, c := range []byte(s) {
		if c >= '0' && c <= '9' {
			out = append(out, int(c-'0'))
		}
	}
	return out
}

// DigitString returns the ordered ASCII decimal digits of s as a string.
func DigitString(s string) string {
	var sb strings.Builder
	for _, c := range []byte(s) {
		if c >= '0' && c <= '9' {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// checkDigit derives a verification digit from a weighted sum, modulo 11.
// Remainder below 2 maps to zero.
func checkDigit(sum int) int {
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

func allEqual(digits []int) bool {
	for _, d := range digits {
		if d != digits[0] {
			return false
		}
	}
	return true
}

// IsCPF validates a CPF following the official algorithm. Punctuation is
// stripped before validation, so both "505.429.838-00" and "50542983800"
// are accepted.
func IsCPF(cpf string) bool {
	digits := Digits(cpf)

	if len(digits) != cpfLen {
		return false
	}

	// Known-invalid sequences such as 111.111.111-11 pass the checksum
	if allEqual(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += digits[i] * (10 - i)
	}
	if digits[9] != checkDigit(sum) {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += digits[i] * (11 - i)
	}
	return digits[10] == checkDigit(sum)
}

// IsCNPJ validates a CNPJ following the official algorithm.
func IsCNPJ(cnpj string) bool {
	digits := Digits(cnpj)

	if len(digits) != cnpjLen {
		return false
	}

	if allEqual(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 12; i++ {
		sum += digits[i] * cnpjWeights1[i]
	}
	if digits[12] != checkDigit(sum) {
		return false
	}

	sum = 0
	for i := 0; i < 13; i++ {
		sum += digits[i] * cnpjWeights2[i]
	}
	return digits[13] == checkDigit(sum)
}

// IsValid reports whether s holds a valid CPF or CNPJ.
func IsValid(s string) bool {
	return Classify(s) != KindNone
}

// Classify identifies the document type of s from its digit count and
// checksum. Anything that is not a valid CPF or CNPJ maps to KindNone.
func Classify(s string) Kind {
	digits := DigitString(s)

	switch len(digits) {
	case cpfLen:
		if IsCPF(digits) {
			return KindCPF
		}
	case cnpjLen:
		if IsCNPJ(digits) {
			return KindCNPJ
		}
	}

	return KindNone
}

// FormatCPF re-inserts the canonical CPF punctuation (DDD.DDD.DDD-DD).
// Inputs without exactly 11 digits are returned unchanged.
func FormatCPF(cpf string) string {
	digits := DigitString(cpf)
	if len(digits) != cpfLen {
		return cpf
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// FormatCNPJ re-inserts the canonical CNPJ punctuation (DD.DDD.DDD/DDDD-DD).
// Inputs without exactly 14 digits are returned unchanged.
func FormatCNPJ(cnpj string) string {
	digits := DigitString(cnpj)
	if len(digits) != cnpjLen {
		return cnpj
	}
	return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
}

// Format validates s and, when it holds a valid CPF or CNPJ, returns it with
// the canonical punctuation. Invalid or unrecognized input is returned
// unchanged; formatting is never an error.
func Format(s string) string {
	switch Classify(s) {
	case KindCPF:
		return FormatCPF(s)
	case KindCNPJ:
		return FormatCNPJ(s)
	default:
		return s
	}
}
