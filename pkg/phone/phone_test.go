package phone

import "testing"

func TestIsValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+5516997184720", true},
		{"+5511987654321", true},
		{"+551687184720", true}, // landline, no leading 9
		{"5516997184720", false},
		{"+55169971847", false},
		{"+55 (16) 99718-4720", false}, // strict form has no separators
		{"", false},
	}

	for _, tc := range tests {
		if got := IsValid(tc.phone); got != tc.want {
			t.Errorf("IsValid(%q) = %v, expected %v", tc.phone, got, tc.want)
		}
	}
}

func TestIsValidFlexible(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+5516997184720", true},
		{"+55 (16) 99718-4720", true},
		{"5516997184720", true},
		{"016997184720", true},
		{"16997184720", true},
		{"16 99718-4720", true},
		{"997184720", false},
		{"abc", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsValidFlexible(tc.phone); got != tc.want {
			t.Errorf("IsValidFlexible(%q) = %v, expected %v", tc.phone, got, tc.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"5516997184720", "+55 (16) 99718-4720"},
		{"+5516997184720", "+55 (16) 99718-4720"},
		{"16997184720", "+55 (16) 99718-4720"},
		{"016997184720", "+55 (16) 99718-4720"},
		{"16 99718-4720", "+55 (16) 99718-4720"},
		// Invalid input passes through untouched
		{"12345", "12345"},
		{"not a phone", "not a phone"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Format(tc.phone); got != tc.want {
			t.Errorf("Format(%q) = %q, expected %q", tc.phone, got, tc.want)
		}
	}
}

func TestFormatIdempotent(t *testing.T) {
	once := Format("5516997184720")
	if twice := Format(once); twice != once {
		t.Fatalf("Format not idempotent: %q -> %q", once, twice)
	}
}
