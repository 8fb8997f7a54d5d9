package writers

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/helviojunior/brparser/pkg/models"
)

// JsonWriter writes one JSON line per parsed file.
type JsonWriter struct {
	FilePath string
	mutex    sync.Mutex
}

// JsonLine is the on-disk shape of a result; the convert command decodes
// the same structure back.
type JsonLine struct {
	File      models.File       `json:"file"`
	Documents []models.Document `json:"documents"`
}

// NewJsonWriter returns a new JSON lines writer
func NewJsonWriter(destination string) (*JsonWriter, error) {
	// Fail early if the destination is not writable
	f, err := os.OpenFile(destination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	f.Close()

	return &JsonWriter{FilePath: destination}, nil
}

// Write a result as a JSON line
func (jw *JsonWriter) Write(result *models.File) error {
	jw.mutex.Lock()
	defer jw.mutex.Unlock()

	f, err := os.OpenFile(jw.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(&JsonLine{File: *result, Documents: result.Documents})
	if err != nil {
		return err
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}

	return nil
}
