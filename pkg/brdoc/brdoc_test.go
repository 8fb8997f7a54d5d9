package brdoc

import (
	"strings"
	"testing"
)

func TestDigits(t *testing.T) {
	got := Digits("505.429.838-00")
	want := []int{5, 0, 5, 4, 2, 9, 8, 3, 8, 0, 0}

	if len(got) != len(want) {
		t.Fatalf("expected %d digits, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("digit %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	if len(Digits("")) != 0 {
		t.Fatalf("expected no digits for empty input")
	}
	if len(Digits("abc-xyz")) != 0 {
		t.Fatalf("expected no digits for non-numeric input")
	}
}

func TestIsCPF(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"50542983800", true},
		{"505.429.838-00", true},
		{"11111111111", false},
		{"50542983801", false},
		{"5054298380", false},
		{"505429838000", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsCPF(tc.cpf); got != tc.want {
			t.Errorf("IsCPF(%q) = %v, expected %v", tc.cpf, got, tc.want)
		}
	}

	// Repeated digit sequences are checksum-consistent but rejected
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), 11)
		if IsCPF(s) {
			t.Errorf("IsCPF(%q) = true, expected false", s)
		}
	}
}

func TestIsCNPJ(t *testing.T) {
	tests := []struct {
		cnpj string
		want bool
	}{
		{"60204424000108", true},
		{"60.204.424/0001-08", true},
		{"11111111111111", false},
		{"60204424000109", false},
		{"6020442400010", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsCNPJ(tc.cnpj); got != tc.want {
			t.Errorf("IsCNPJ(%q) = %v, expected %v", tc.cnpj, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"50542983800", KindCPF},
		{"505.429.838-00", KindCPF},
		{"60204424000108", KindCNPJ},
		{"60.204.424/0001-08", KindCNPJ},
		{"11111111111", KindNone},
		{"11111111111111", KindNone},
		{"123", KindNone},
		{"", KindNone},
		{"not a document", KindNone},
	}

	for _, tc := range tests {
		if got := Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}

	// Any digit count other than 11 or 14 is unclassified
	for n := 0; n < 20; n++ {
		if n == 11 || n == 14 {
			continue
		}
		if got := Classify(strings.Repeat("7", n)); got != KindNone {
			t.Errorf("Classify of %d digits = %v, expected KindNone", n, got)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindCPF.String() != "CPF" || KindCNPJ.String() != "CNPJ" || KindNone.String() != "" {
		t.Fatalf("unexpected Kind string values")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"50542983800", "505.429.838-00"},
		{"60204424000108", "60.204.424/0001-08"},
		// Failed checksum leaves the input untouched
		{"11111111111", "11111111111"},
		{"50542983801", "50542983801"},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Format(tc.in); got != tc.want {
			t.Errorf("Format(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	for _, s := range []string{"50542983800", "60204424000108"} {
		once := Format(s)
		twice := Format(once)
		if once != twice {
			t.Errorf("Format not idempotent: %q -> %q -> %q", s, once, twice)
		}
	}
}

func TestFormatCPF(t *testing.T) {
	if got := FormatCPF("50542983800"); got != "505.429.838-00" {
		t.Fatalf("FormatCPF = %q", got)
	}
	// Length-only helper: no checksum here
	if got := FormatCPF("11111111111"); got != "111.111.111-11" {
		t.Fatalf("FormatCPF = %q", got)
	}
	if got := FormatCPF("123"); got != "123" {
		t.Fatalf("FormatCPF = %q", got)
	}
}

func TestFormatCNPJ(t *testing.T) {
	if got := FormatCNPJ("60204424000108"); got != "60.204.424/0001-08" {
		t.Fatalf("FormatCNPJ = %q", got)
	}
	if got := FormatCNPJ("123"); got != "123" {
		t.Fatalf("FormatCNPJ = %q", got)
	}
}
