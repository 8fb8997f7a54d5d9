package mapping

import "testing"

func TestParse(t *testing.T) {
	m, err := Parse([]byte(`
columns:
  - name: document
    expressions: [validate_cpf_cnpj, is_cpf_or_cnpj, format_cpf_cnpj]
  - name: phone
    expressions: [format_phone]
    replace: true
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(m.Columns))
	}
	if !m.Columns[1].Replace {
		t.Fatalf("expected replace flag on phone column")
	}
}

func TestParseRejectsUnknownExpression(t *testing.T) {
	_, err := Parse([]byte(`
columns:
  - name: document
    expressions: [no_such_expr]
`))
	if err == nil {
		t.Fatalf("expected error for unknown expression")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := Parse([]byte(`columns: []`)); err == nil {
		t.Fatalf("expected error for empty mapping")
	}
	if _, err := Parse([]byte(`
columns:
  - name: document
    expressions: []
`)); err == nil {
		t.Fatalf("expected error for column without expressions")
	}
}

func TestColumnFor(t *testing.T) {
	m, err := Parse([]byte(`
columns:
  - name: numero_do_documento
    expressions: [format_cpf_cnpj]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header match is slug based, so accents and case do not matter
	if _, ok := m.ColumnFor("Número do Documento"); !ok {
		t.Fatalf("expected accented header to match")
	}
	if _, ok := m.ColumnFor("other"); ok {
		t.Fatalf("unexpected match for unrelated header")
	}
}
