package text

import "testing"

func TestRemoveAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"João da Silva", "Joao da Silva"},
		{"María José", "Maria Jose"},
		{"ação", "acao"},
		{"ÀÉÎÕÜÇÑ", "AEIOUCN"},
		{"no accents", "no accents"},
		{"", ""},
		// Only table runes change: ó maps, ł and ź stay
		{"łódź", "łodź"},
		{"łź", "łź"},
	}

	for _, tc := range tests {
		if got := RemoveAccents(tc.in); got != tc.want {
			t.Errorf("RemoveAccents(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"joão da silva", "João Da Silva"},
		{"HELLO WORLD", "Hello World"},
		{"  spaced   out  ", "Spaced Out"},
		{"single", "Single"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestPigLatin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pig", "igpay"},
		{"latin", "atinlay"},
		{"is", "siay"},
		{"silly", "illysay"},
		{"a", "aay"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := PigLatin(tc.in); got != tc.want {
			t.Errorf("PigLatin(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Número do Documento", "numero_do_documento"},
		{"Telefone (celular)", "telefone_celular"},
		{"name", "name"},
		{"  CPF / CNPJ  ", "cpf_cnpj"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
