package writers

import (
	"fmt"

	"github.com/helviojunior/brparser/pkg/models"
)

// StdoutWriter is a Stdout writer
type StdoutWriter struct {
}

// NewStdoutWriter initialises a stdout writer
func NewStdoutWriter() (*StdoutWriter, error) {
	return &StdoutWriter{}, nil
}

// Write results to stdout, one document per line (usable in a pipeline)
func (s *StdoutWriter) Write(result *models.File) error {
	for _, doc := range result.Documents {
		v := doc.Formatted
		if v == "" {
			v = doc.Raw
		}
		fmt.Printf("%s\t%s\t%s\n", doc.Kind, v, result.FileName)
	}
	return nil
}
