package runner

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/writers"
)

type stubDriver struct{}

func (stubDriver) ParseFile(runner *Runner, filePath string) (*models.File, error) {
	return nil, nil
}

func (stubDriver) Close() {}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	run, err := NewRunner(logger, stubDriver{}, *NewDefaultOptions(), []writers.Writer{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	return run
}

func TestDetectStringCpf(t *testing.T) {
	run := newTestRunner(t)

	findings := run.DetectString("cadastro do cliente 505.429.838-00 aprovado")
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}

	doc := findings[0].Document
	if doc.Kind != "cpf" {
		t.Errorf("Kind = %q, want cpf", doc.Kind)
	}
	if doc.Digits != "50542983800" {
		t.Errorf("Digits = %q", doc.Digits)
	}
	if doc.Formatted != "505.429.838-00" {
		t.Errorf("Formatted = %q", doc.Formatted)
	}
}

func TestDetectStringInvalidChecksum(t *testing.T) {
	run := newTestRunner(t)

	// fails both check digits
	findings := run.DetectString("documento 505.429.838-01 em analise")
	if len(findings) != 0 {
		t.Fatalf("findings = %d, want 0", len(findings))
	}
}

func TestDetectStringCnpj(t *testing.T) {
	run := newTestRunner(t)

	findings := run.DetectString("empresa 60.204.424/0001-08 ativa")
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}

	doc := findings[0].Document
	if doc.Kind != "cnpj" {
		t.Errorf("Kind = %q, want cnpj", doc.Kind)
	}
	if doc.Formatted != "60.204.424/0001-08" {
		t.Errorf("Formatted = %q", doc.Formatted)
	}
}

func TestDetectStringPhone(t *testing.T) {
	run := newTestRunner(t)

	findings := run.DetectString("contato: +55 (16) 99718-4720")

	var phones int
	for _, f := range findings {
		if f.Document.Kind == "phone" {
			phones++
			if f.Document.Formatted != "+55 (16) 99718-4720" {
				t.Errorf("Formatted = %q", f.Document.Formatted)
			}
		}
	}
	if phones != 1 {
		t.Fatalf("phone findings = %d, want 1", phones)
	}
}

func TestDetectStringEmail(t *testing.T) {
	run := newTestRunner(t)

	findings := run.DetectString("envie para Joao.Silva@empresa.com.br ate sexta")
	if len(findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(findings))
	}

	doc := findings[0].Document
	if doc.Kind != "email" {
		t.Errorf("Kind = %q, want email", doc.Kind)
	}
	if doc.Domain != "empresa.com.br" {
		t.Errorf("Domain = %q", doc.Domain)
	}
	if doc.Formatted != "joao.silva@empresa.com.br" {
		t.Errorf("Formatted = %q", doc.Formatted)
	}
}

func TestDetectStringEmailStopDomain(t *testing.T) {
	run := newTestRunner(t)

	findings := run.DetectString("placeholder: nobody@example.com")
	if len(findings) != 0 {
		t.Fatalf("findings = %d, want 0", len(findings))
	}
}

func TestDetectFile(t *testing.T) {
	run := newTestRunner(t)

	content := "linha um\n" +
		"cpf: 505.429.838-00\n" +
		"cnpj: 60.204.424/0001-08\n" +
		"cpf repetido: 505.429.838-00\n"

	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	file := &models.File{FilePath: path, FileName: "dump.txt"}
	if err := run.DetectFile(file); err != nil {
		t.Fatalf("DetectFile() error = %v", err)
	}

	// the repeated cpf counts once per file
	if len(file.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(file.Documents))
	}

	byKind := map[string]models.Document{}
	for _, doc := range file.Documents {
		byKind[doc.Kind] = doc
	}

	if doc, ok := byKind["cpf"]; !ok {
		t.Error("missing cpf document")
	} else if doc.Line != 2 {
		t.Errorf("cpf Line = %d, want 2", doc.Line)
	}

	if doc, ok := byKind["cnpj"]; !ok {
		t.Error("missing cnpj document")
	} else if doc.Line != 3 {
		t.Errorf("cnpj Line = %d, want 3", doc.Line)
	}
}

func TestDetectFileNearDuplicate(t *testing.T) {
	run := newTestRunner(t)

	content := "relatorio diario de cadastros aprovados\n" +
		"cliente com documento 505.429.838-00 aprovado pela mesa\n" +
		"encaminhado para a fila de analise manual\n"

	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(first, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run.DetectFile(&models.File{FilePath: first}); err != nil {
		t.Fatalf("DetectFile() error = %v", err)
	}

	err := run.DetectFile(&models.File{FilePath: second})
	if err != ErrNearDuplicateFile {
		t.Fatalf("DetectFile() error = %v, want ErrNearDuplicateFile", err)
	}
}

func TestShannonEntropy(t *testing.T) {
	if got := shannonEntropy(""); got != 0 {
		t.Errorf("entropy of empty string = %f", got)
	}
	if got := shannonEntropy("aaaa"); got != 0 {
		t.Errorf("entropy of aaaa = %f", got)
	}
	if got := shannonEntropy("abcd"); got != 2 {
		t.Errorf("entropy of abcd = %f, want 2", got)
	}
}

func TestLocation(t *testing.T) {
	fragment := Fragment{Raw: "first\nsecond line\nthird"}
	fragment.newlineIndices = newLineRegexp.FindAllStringIndex(fragment.Raw, -1)

	// "second" starts at index 6
	loc := location(fragment, []int{6, 12})
	if loc.startLine != 1 {
		t.Errorf("startLine = %d, want 1", loc.startLine)
	}
	if loc.startColumn != 0 {
		t.Errorf("startColumn = %d, want 0", loc.startColumn)
	}
	if got := fragment.Raw[loc.startLineIndex:loc.endLineIndex]; got != "second line" {
		t.Errorf("line = %q, want %q", got, "second line")
	}
}
