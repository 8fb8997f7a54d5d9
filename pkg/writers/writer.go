package writers

import "github.com/helviojunior/brparser/pkg/models"

// Writer is a results writer
type Writer interface {
	Write(*models.File) error
}
