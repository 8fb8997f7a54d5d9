package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/internal/islazy"
	"github.com/helviojunior/brparser/pkg/database"
	"github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/writers"
	"github.com/spf13/cobra"
)

var conversionCmdExtensions = []string{".sqlite3", ".db", ".jsonl"}
var convertCmdFlags = struct {
	fromFile string
	toFile   string

	fromExt string
	toExt   string
}{}
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between SQLite and JSON Lines file formats",
	Long: ascii.LogoHelp(ascii.Markdown(`
# report convert

Convert between SQLite and JSON Lines file formats.

A --from-file and --to-file must be specified. The extension used for the
specified filenames will be used to determine the conversion direction and
target.`)),
	Example: `
   - brparser report convert --to-file data.jsonl
   - brparser report convert --to-file data.jsonl --filter acme,582.981
   - brparser report convert --from-file brparser.sqlite3 --to-file data.jsonl
   - brparser report convert --from-file brparser.jsonl --to-file db.sqlite3`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if convertCmdFlags.fromFile == "" {
			return errors.New("from file not set")
		}
		if convertCmdFlags.toFile == "" {
			return errors.New("to file not set")
		}

		convertCmdFlags.fromFile, err = islazy.ResolveFullPath(convertCmdFlags.fromFile)
		if err != nil {
			return err
		}

		convertCmdFlags.toFile, err = islazy.ResolveFullPath(convertCmdFlags.toFile)
		if err != nil {
			return err
		}

		convertCmdFlags.fromExt = strings.ToLower(filepath.Ext(convertCmdFlags.fromFile))
		convertCmdFlags.toExt = strings.ToLower(filepath.Ext(convertCmdFlags.toFile))

		if convertCmdFlags.fromExt == "" || convertCmdFlags.toExt == "" {
			return errors.New("source and destination files must have extensions")
		}

		if convertCmdFlags.fromExt == convertCmdFlags.toExt && len(filterList) == 0 {
			return errors.New("👀 source and destination file types must be different")
		}

		if convertCmdFlags.fromFile == convertCmdFlags.toFile {
			return errors.New("source and destination files cannot be the same")
		}

		if !islazy.SliceHasStr(conversionCmdExtensions, convertCmdFlags.fromExt) {
			return errors.New("unsupported from file type")
		}
		if !islazy.SliceHasStr(conversionCmdExtensions, convertCmdFlags.toExt) {
			return errors.New("unsupported to file type")
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		var writer writers.Writer
		var err error
		var running bool
		wg := sync.WaitGroup{}

		if convertCmdFlags.toExt == ".sqlite3" || convertCmdFlags.toExt == ".db" {
			writer, err = writers.NewDbWriter(fmt.Sprintf("sqlite:///%s", convertCmdFlags.toFile), false)
			if err != nil {
				log.Error("could not get a database writer up", "err", err)
				return
			}
		} else if convertCmdFlags.toExt == ".jsonl" {
			toFile, err := islazy.CreateFileWithDir(convertCmdFlags.toFile)
			if err != nil {
				log.Error("could not create target file", "err", err)
				return
			}
			writer, err = writers.NewJsonWriter(toFile)
			if err != nil {
				log.Error("could not get a JSON writer up", "err", err)
				return
			}
		}

		var status = &ConvStatus{
			Converted: 0,
			Spin:      "",
		}

		running = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			for running {
				status.Print()
				time.Sleep(time.Duration(time.Second / 4))
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if convertCmdFlags.fromExt == ".sqlite3" || convertCmdFlags.fromExt == ".db" {
				if err := convertFromDbTo(convertCmdFlags.fromFile, writer, status); err != nil {
					log.Error("failed to convert to JSON Lines", "err", err)
					return
				}
			} else if convertCmdFlags.fromExt == ".jsonl" {
				if err := convertFromJsonlTo(convertCmdFlags.fromFile, writer, status); err != nil {
					log.Error("failed to convert to SQLite", "err", err)
					return
				}
			}

			running = false
			time.Sleep(time.Second)
		}()

		wg.Wait()

		fmt.Fprintf(os.Stderr, "%s\n%s\r\033[A",
			"                                                                                ",
			"                                                                                ",
		)

		diff := time.Now().Sub(startTime)
		out := time.Time{}.Add(diff)

		st := "Convertion status\n"
		st += "     -> Elapsed time.....: %s\n"
		st += "     -> Files converted..: %s\n"
		st += "     -> CPF..............: %s\n"
		st += "     -> CNPJ.............: %s\n"
		st += "     -> Phones...........: %s\n"
		st += "     -> E-mails..........: %s\n"

		log.Infof(st,
			out.Format("15:04:05"),
			islazy.FormatIntComma(status.Converted),
			islazy.FormatIntComma(status.Cpf),
			islazy.FormatIntComma(status.Cnpj),
			islazy.FormatIntComma(status.Phone),
			islazy.FormatIntComma(status.Email),
		)

	},
}

func init() {
	reportCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertCmdFlags.fromFile, "from-file", "~/.brparser.db", "The file to convert from")
	convertCmd.Flags().StringVar(&convertCmdFlags.toFile, "to-file", "", "The file to convert to. Use .sqlite3 for conversion to SQLite, and .jsonl for conversion to JSON Lines")
}

func convertFromDbTo(from string, writer writers.Writer, status *ConvStatus) error {
	defer clearScreen()
	ascii.HideCursor()

	log.Info("starting conversion...")
	conn, err := database.Connection(fmt.Sprintf("sqlite:///%s", from), true, false)
	if err != nil {
		return err
	}

	rows, err := conn.Model(&models.File{}).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	var file models.File
	for rows.Next() {
		conn.ScanRows(rows, &file)

		logger := log.With("id", file.ID, "file", file.FileName)

		sql1 := "file_id == " + strconv.FormatUint(uint64(file.ID), 10)
		if opts.DateFilter != nil {
			sql1 += " AND [time] >= '" + opts.DateFilter.Format("2006-01-02") + "' "
		}
		sql1 += prepareSQL([]string{"raw", "formatted", "domain", "near_text"})

		rDocs, err := conn.Model(&models.Document{}).Where(sql1).Rows()
		if err != nil {
			return err
		}

		newResult := file.Clone()

		logger.Debug("Checking documents...")
		var doc models.Document
		for rDocs.Next() {
			conn.ScanRows(rDocs, &doc)
			newResult.Documents = append(newResult.Documents, doc)
			status.CountDocument(doc.Kind)
		}
		rDocs.Close()

		if containsFilterWord(file.FileName) || len(newResult.Documents) != 0 {
			logger.Debug("Converting file!")
			status.Converted++
			if err := writer.Write(newResult); err != nil {
				return err
			}
		}
	}

	return nil
}

func convertFromJsonlTo(from string, writer writers.Writer, status *ConvStatus) error {
	defer clearScreen()
	ascii.HideCursor()

	log.Info("starting conversion...")

	file, err := os.Open(from)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				if len(line) == 0 {
					break // End of file
				}
				// Handle the last line without '\n'
			} else {
				return err
			}
		}

		var result writers.JsonLine
		if err := json.Unmarshal(line, &result); err != nil {
			log.Error("could not unmarshal JSON line", "err", err)
			continue
		}
		result.File.Documents = result.Documents

		newResult := getFilteredOnly(result.File)
		if newResult != nil {
			if err := writer.Write(newResult); err != nil {
				return err
			}
			status.Converted++
			for _, doc := range newResult.Documents {
				status.CountDocument(doc.Kind)
			}
		}

		if err == io.EOF {
			break
		}
	}

	return nil
}
