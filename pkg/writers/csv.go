package writers

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/helviojunior/brparser/pkg/models"
)

var csvHeader = []string{
	"time", "provider", "file_name", "kind", "rule", "raw",
	"digits", "formatted", "column", "line", "domain",
}

// CsvWriter writes one CSV row per extracted document (limited columns).
type CsvWriter struct {
	FilePath string
	mutex    sync.Mutex
}

// NewCsvWriter returns a new CSV writer
func NewCsvWriter(destination string) (*CsvWriter, error) {
	wroteHeader := false
	if st, err := os.Stat(destination); err == nil && st.Size() > 0 {
		wroteHeader = true
	}

	f, err := os.OpenFile(destination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !wroteHeader {
		w := csv.NewWriter(f)
		if err := w.Write(csvHeader); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CsvWriter{FilePath: destination}, nil
}

// Write the documents of a result as CSV rows
func (cw *CsvWriter) Write(result *models.File) error {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()

	f, err := os.OpenFile(cw.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, doc := range result.Documents {
		row := []string{
			doc.Time.Format(time.RFC3339),
			result.Provider,
			result.FileName,
			doc.Kind,
			doc.Rule,
			doc.Raw,
			doc.Digits,
			doc.Formatted,
			doc.Column,
			strconv.Itoa(doc.Line),
			doc.Domain,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}
