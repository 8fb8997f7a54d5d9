package runner

import (
	"fmt"

	"github.com/helviojunior/brparser/pkg/models"
)

// ParserNotFoundError signals that no driver exists for an input
type ParserNotFoundError struct {
	Err error
}

func (e ParserNotFoundError) Error() string {
	return fmt.Sprintf("parser not found: %v", e.Err)
}

// ParserDriver is the interface file drivers will implement.
type ParserDriver interface {
	ParseFile(runner *Runner, filePath string) (*models.File, error)
	Close()
}
