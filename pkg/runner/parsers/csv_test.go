package driver

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/runner"
	"github.com/helviojunior/brparser/pkg/writers"
)

const testMapping = `
columns:
  - name: documento
    expressions: [is_cpf_or_cnpj, format_cpf_cnpj]
  - name: telefone
    expressions: [format_phone]
    replace: true
`

func newCsvTestSetup(t *testing.T, csvContent string) (*CsvParser, *runner.Runner, string, string) {
	t.Helper()

	dir := t.TempDir()

	mappingPath := filepath.Join(dir, "mapping.yaml")
	if err := os.WriteFile(mappingPath, []byte(testMapping), 0644); err != nil {
		t.Fatal(err)
	}

	csvPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(csvPath, []byte(csvContent), 0644); err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(dir, "out")

	opts := *runner.NewDefaultOptions()
	opts.Writer.NoControlDb = true
	opts.Parser.Mapping = mappingPath
	opts.Parser.OutputPath = outPath

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	parser, err := NewCsv(logger, opts)
	if err != nil {
		t.Fatalf("NewCsv() error = %v", err)
	}

	run, err := runner.NewRunner(logger, parser, opts, []writers.Writer{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	return parser, run, csvPath, outPath
}

func TestCsvParseFile(t *testing.T) {
	content := "Documento,Telefone,Nome\n" +
		"50542983800,16997184720,Joao\n" +
		",,Maria\n"

	parser, run, csvPath, outPath := newCsvTestSetup(t, content)
	defer parser.Close()

	file, err := parser.ParseFile(run, csvPath)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if file == nil {
		t.Fatal("ParseFile() returned a nil file")
	}

	if file.Provider != "CSV" {
		t.Errorf("Provider = %q, want CSV", file.Provider)
	}
	if file.Rows != 2 {
		t.Errorf("Rows = %d, want 2", file.Rows)
	}

	byKind := map[string]models.Document{}
	for _, doc := range file.Documents {
		byKind[doc.Kind] = doc
	}

	if doc, ok := byKind["cpf"]; !ok {
		t.Error("missing cpf document")
	} else {
		if doc.Column != "documento" {
			t.Errorf("cpf Column = %q, want documento", doc.Column)
		}
		if doc.Line != 2 {
			t.Errorf("cpf Line = %d, want 2", doc.Line)
		}
		if doc.Formatted != "505.429.838-00" {
			t.Errorf("cpf Formatted = %q", doc.Formatted)
		}
	}

	if doc, ok := byKind["phone"]; !ok {
		t.Error("missing phone document")
	} else if doc.Column != "telefone" {
		t.Errorf("phone Column = %q, want telefone", doc.Column)
	}

	outFile, err := os.Open(filepath.Join(outPath, "data.csv"))
	if err != nil {
		t.Fatalf("opening transformed copy: %v", err)
	}
	defer outFile.Close()

	records, err := csv.NewReader(outFile).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("transformed rows = %d, want 3", len(records))
	}

	wantHeader := []string{"Documento", "Telefone", "Nome",
		"Documento_is_cpf_or_cnpj", "Documento_format_cpf_cnpj"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	// replace column rewritten in place
	if records[1][1] != "+55 (16) 99718-4720" {
		t.Errorf("telefone = %q", records[1][1])
	}
	if records[1][3] != "CPF" {
		t.Errorf("is_cpf_or_cnpj = %q, want CPF", records[1][3])
	}
	if records[1][4] != "505.429.838-00" {
		t.Errorf("format_cpf_cnpj = %q", records[1][4])
	}

	// null input rows keep empty derived cells
	if records[2][3] != "" || records[2][4] != "" {
		t.Errorf("null derived cells = %q, %q", records[2][3], records[2][4])
	}
}

func TestCsvParseFileNoMappedColumns(t *testing.T) {
	content := "Nome,Idade\nJoao,33\n"

	parser, run, csvPath, _ := newCsvTestSetup(t, content)
	defer parser.Close()

	file, err := parser.ParseFile(run, csvPath)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if file != nil {
		t.Fatal("expected the file to be skipped")
	}
}
