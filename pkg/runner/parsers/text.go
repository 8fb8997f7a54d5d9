package driver

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/helviojunior/brparser/internal/tools"
	"github.com/helviojunior/brparser/pkg/database"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/runner"
	"gorm.io/gorm"
)

// TextParser scans free-form text files for documents using the rule
// engine of the runner.
type TextParser struct {
	// options for the Runner to consider
	options runner.Options
	// logger
	log *slog.Logger
	// control database, used to skip already parsed files
	conn *gorm.DB
}

// NewText returns a new TextParser instance
func NewText(logger *slog.Logger, opts runner.Options) (*TextParser, error) {
	var conn *gorm.DB
	var err error

	if !opts.Writer.NoControlDb {
		conn, err = database.Connection(opts.Writer.GlobalDbURI, false, false)
		if err != nil {
			return nil, err
		}
	}

	return &TextParser{
		options: opts,
		log:     logger,
		conn:    conn,
	}, nil
}

// ParseFile scans a single text file. Returning a nil file means the file
// was intentionally skipped.
func (p *TextParser) ParseFile(thisRunner *runner.Runner, filePath string) (*models.File, error) {
	logger := p.log.With("file_path", filePath)

	fileName := filepath.Base(filePath)
	result := &models.File{
		Provider: "Text",
		FilePath: filePath,
		FileName: fileName,
		ParsedAt: time.Now(),
	}

	var err error
	result.Fingerprint, err = tools.GetHashFromFile(filePath)
	if err != nil {
		return result, err
	}
	result.MIMEType, _ = tools.GetMimeType(filePath)
	if fi, err := os.Stat(filePath); err == nil {
		result.Size = uint(fi.Size())
	}

	if p.alreadyParsed(result.Fingerprint) {
		logger.Debug("File already parsed")
		return nil, nil
	}

	logger.Debug("Parsing file")
	if err := thisRunner.DetectFile(result); err != nil {
		if errors.Is(err, runner.ErrNearDuplicateFile) {
			logger.Debug("Skipping near-duplicate file")
			return nil, nil
		}
		return result, err
	}

	return result, nil
}

func (p *TextParser) alreadyParsed(fingerprint string) bool {
	if p.conn == nil {
		return false
	}

	response := p.conn.Raw("SELECT count(id) as count from files WHERE failed = 0 AND fingerprint = ?", fingerprint)
	if response == nil {
		return false
	}

	var cnt int
	_ = response.Row().Scan(&cnt)
	return cnt > 0
}

func (p *TextParser) Close() {
	p.log.Debug("closing text parser context")
}
