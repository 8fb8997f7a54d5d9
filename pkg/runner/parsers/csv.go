package driver

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/helviojunior/brparser/internal/islazy"
	"github.com/helviojunior/brparser/internal/tools"
	"github.com/helviojunior/brparser/pkg/database"
	"github.com/helviojunior/brparser/pkg/mapping"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/phone"
	"github.com/helviojunior/brparser/pkg/runner"
	"github.com/helviojunior/brparser/pkg/series"
	"gorm.io/gorm"
)

// rows per transform batch
const csvBatchSize = 500

// CsvParser applies the mapped column expressions to CSV datasets and
// writes a transformed copy next to the collected documents.
type CsvParser struct {
	// options for the Runner to consider
	options runner.Options
	// logger
	log *slog.Logger
	// column to expression assignment
	mapping *mapping.Mapping
	// control database, used to skip already parsed files
	conn *gorm.DB
}

// mappedColumn is a mapping entry resolved against a concrete header.
type mappedColumn struct {
	index int
	col   *mapping.Column
	exprs []series.Expr

	// phone marks columns mapped to a phone expression. Cells of those
	// columns accept the flexible national spellings, which the free-text
	// rules do not.
	phone bool
}

// NewCsv returns a new CsvParser instance
func NewCsv(logger *slog.Logger, opts runner.Options) (*CsvParser, error) {
	m, err := mapping.Load(opts.Parser.Mapping)
	if err != nil {
		return nil, err
	}

	var conn *gorm.DB
	if !opts.Writer.NoControlDb {
		conn, err = database.Connection(opts.Writer.GlobalDbURI, false, false)
		if err != nil {
			return nil, err
		}
	}

	return &CsvParser{
		options: opts,
		log:     logger,
		mapping: m,
		conn:    conn,
	}, nil
}

// ParseFile transforms a single CSV file. Returning a nil file means the
// file was intentionally skipped.
func (p *CsvParser) ParseFile(thisRunner *runner.Runner, filePath string) (*models.File, error) {
	logger := p.log.With("file_path", filePath)

	fileName := filepath.Base(filePath)
	result := &models.File{
		Provider: "CSV",
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

	f, err := os.Open(filePath)
	if err != nil {
		return result, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("reading csv header: %w", err)
	}

	mapped := p.resolveColumns(header)
	if len(mapped) == 0 {
		logger.Debug("No mapped columns in file")
		return nil, nil
	}

	var out *csv.Writer
	if p.options.Parser.OutputPath != "" {
		outFile, err := p.openOutput(fileName)
		if err != nil {
			return result, err
		}
		defer outFile.Close()

		out = csv.NewWriter(outFile)
		defer out.Flush()

		if err := out.Write(p.outputHeader(header, mapped)); err != nil {
			return result, err
		}
	}

	logger.Debug("Parsing file", "mapped_columns", len(mapped))

	batch := make([][]string, 0, csvBatchSize)
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, err
		}

		batch = append(batch, record)
		rows++

		if len(batch) == csvBatchSize {
			if err := p.processBatch(thisRunner, result, mapped, batch, rows-len(batch), out); err != nil {
				return result, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := p.processBatch(thisRunner, result, mapped, batch, rows-len(batch), out); err != nil {
			return result, err
		}
	}

	result.Rows = uint(rows)
	return result, nil
}

// resolveColumns matches the mapping against the header, resolving every
// expression name once.
func (p *CsvParser) resolveColumns(header []string) []mappedColumn {
	var mapped []mappedColumn
	for i, h := range header {
		col, ok := p.mapping.ColumnFor(h)
		if !ok {
			continue
		}

		mc := mappedColumn{index: i, col: col}
		for _, name := range col.Expressions {
			// mapping.Load already rejected unknown names
			e, _ := series.Lookup(name)
			mc.exprs = append(mc.exprs, e)

			if strings.HasPrefix(name, "validate_phone") || name == "format_phone" {
				mc.phone = true
			}
		}
		mapped = append(mapped, mc)
	}
	return mapped
}

// outputHeader is the input header plus one derived column per expression.
// Replace columns keep the original name and gain nothing.
func (p *CsvParser) outputHeader(header []string, mapped []mappedColumn) []string {
	out := append([]string{}, header...)
	for _, mc := range mapped {
		if mc.col.Replace {
			continue
		}
		for _, e := range mc.exprs {
			out = append(out, header[mc.index]+"_"+e.Name())
		}
	}
	return out
}

// processBatch applies every mapped expression over the batch as series,
// emits the transformed rows and collects validated documents.
func (p *CsvParser) processBatch(thisRunner *runner.Runner, result *models.File, mapped []mappedColumn, batch [][]string, rowOffset int, out *csv.Writer) error {
	derived := make(map[int][]*series.Series, len(mapped))

	for _, mc := range mapped {
		in := series.New(mc.col.Name, len(batch))
		for _, record := range batch {
			if mc.index >= len(record) || record[mc.index] == "" {
				in.AppendNull()
				continue
			}
			in.Append(record[mc.index])
		}

		cols := make([]*series.Series, 0, len(mc.exprs))
		for _, e := range mc.exprs {
			cols = append(cols, e.Apply(in))
		}
		derived[mc.index] = cols

		p.collectDocuments(thisRunner, result, mc, in, rowOffset)
	}

	if out == nil {
		return nil
	}

	for i, record := range batch {
		row := append([]string{}, record...)
		for _, mc := range mapped {
			cols := derived[mc.index]
			if mc.col.Replace {
				if v, ok := cols[len(cols)-1].Value(i); ok && mc.index < len(row) {
					row[mc.index] = v
				}
				continue
			}
			for _, c := range cols {
				v, _ := c.Value(i)
				row = append(row, v)
			}
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// collectDocuments runs the rule engine over every set cell of the column.
// Phone columns get a direct flexible check instead of the rule, since the
// free-text phone rule only accepts the +55 spellings.
func (p *CsvParser) collectDocuments(thisRunner *runner.Runner, result *models.File, mc mappedColumn, in *series.Series, rowOffset int) {
	for i := 0; i < in.Len(); i++ {
		v, ok := in.Value(i)
		if !ok {
			continue
		}

		// header is line 1
		line := rowOffset + i + 2

		if mc.phone && phone.IsValidFlexible(v) {
			doc := models.Document{
				Time:      result.ParsedAt,
				Kind:      "phone",
				Rule:      "Phone",
				Raw:       v,
				Formatted: phone.Format(v),
				Column:    mc.col.Name,
				Line:      line,
			}
			thisRunner.CountDocument(doc.Kind)
			result.AddDocument(doc)
		}

		for _, finding := range thisRunner.DetectString(v) {
			doc := finding.Document
			if mc.phone && doc.Kind == "phone" {
				continue
			}
			doc.Column = mc.col.Name
			doc.Line = line

			thisRunner.CountDocument(doc.Kind)
			result.AddDocument(doc)
		}
	}
}

func (p *CsvParser) openOutput(fileName string) (*os.File, error) {
	dir, err := islazy.CreateDir(p.options.Parser.OutputPath)
	if err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(dir, fileName))
}

func (p *CsvParser) alreadyParsed(fingerprint string) bool {
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

func (p *CsvParser) Close() {
	p.log.Debug("closing csv parser context")
}
