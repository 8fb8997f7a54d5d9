package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	resolver "github.com/helviojunior/gopathresolver"

	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/internal/disk"
	"github.com/helviojunior/brparser/internal/islazy"
	"github.com/helviojunior/brparser/internal/tools"
	"github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/readers"
	"github.com/helviojunior/brparser/pkg/runner"
	parsers "github.com/helviojunior/brparser/pkg/runner/parsers"
	"github.com/spf13/cobra"
)

var parserDriver runner.ParserDriver
var textCmdOptions = &readers.FileReaderOptions{}
var textFileList string
var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Scan free-form text files",
	Long: ascii.LogoHelp(ascii.Markdown(`
# parse text

Scan a text file, or every file under a folder, for CPF, CNPJ, phone
numbers and e-mail addresses.
`)),
	Example: `
   - brparser parse text -p "~/Desktop/leak.txt"
   - brparser parse text -p ~/Desktop/
   - brparser parse text -p ~/Desktop/ --write-elastic --write-elasticsearch-uri "http://127.0.0.1:9200/brparser"
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if textCmdOptions.Path == "" && textFileList == "" {
			return errors.New("a file, path or file list must be specified")
		}

		if textCmdOptions.Path != "" {
			if !islazy.FileExists(textCmdOptions.Path) {
				return errors.New("file or path is not readable")
			}

			textCmdOptions.Path, err = resolver.ResolveFullPath(textCmdOptions.Path)
			if err != nil {
				return err
			}
		}

		if textFileList != "" {
			if !islazy.FileExists(textFileList) {
				return errors.New("file list is not readable")
			}

			textFileList, err = resolver.ResolveFullPath(textFileList)
			if err != nil {
				return err
			}
		}

		// An slog-capable logger to use with drivers and runners
		logger := slog.New(log.Logger)

		// Configure the driver
		parserDriver, err = parsers.NewText(logger, *opts)
		if err != nil {
			return err
		}

		// Get the runner up. Basically, all of the subcommands will use this.
		scanRunner, err = runner.NewRunner(logger, parserDriver, *opts, scanWriters)
		if err != nil {
			return err
		}

		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		var ft string
		var err error

		if textCmdOptions.Path != "" {
			if ft, err = tools.FileType(textCmdOptions.Path); err != nil {
				log.Error("error getting path type", "err", err)
				os.Exit(2)
			}
		}

		log.Debug("starting text scanning", "path", textCmdOptions.Path, "type", ft)

		go func() {
			defer close(scanRunner.Files)

			if textFileList != "" {
				var candidates []string
				if err := readers.ReadFileList(textFileList, &candidates); err != nil {
					log.Error("error reading file list", "err", err)
					return
				}
				for _, candidate := range candidates {
					scanRunner.Files <- candidate
				}
			}

			if textCmdOptions.Path == "" {
				return
			}

			if ft == "file" {
				scanRunner.Files <- textCmdOptions.Path
				return
			}

			err := filepath.WalkDir(textCmdOptions.Path, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					log.Debug("error walking path", "path", path, "err", err)
					return nil
				}
				if d.IsDir() {
					return nil
				}
				scanRunner.Files <- path
				return nil
			})
			if err != nil {
				log.Error("error listing directory files", "err", err)
			}
		}()

		log.Info("Starting text parser")
		status := scanRunner.Run()
		scanRunner.Close()

		printSummary(status)
	},
}

func printSummary(status runner.Status) {
	diff := time.Now().Sub(startTime)
	out := time.Time{}.Add(diff)

	st := "Execution statistics\n"
	st += "     -> Elapsed time.....: %s\n"
	st += "     -> Files parsed.....: %s\n"
	st += "     -> Skipped..........: %s\n"
	st += "     -> Execution error..: %s\n"
	st += "     -> CPF..............: %s\n"
	st += "     -> CNPJ.............: %s\n"
	st += "     -> Phones...........: %s\n"
	st += "     -> E-mails..........: %s\n"
	st += "     -> Memory (RSS).....: %s\n"

	log.Warnf(st,
		out.Format("15:04:05"),
		islazy.FormatIntComma(status.Parsed),
		islazy.FormatIntComma(status.Skipped),
		islazy.FormatIntComma(status.Error),
		islazy.FormatIntComma(status.Cpf),
		islazy.FormatIntComma(status.Cnpj),
		islazy.FormatIntComma(status.Phone),
		islazy.FormatIntComma(status.Email),
		islazy.FormatInt64Comma(int64(disk.ResidentMemory())),
	)

	os.RemoveAll(tempFolder)
}

func init() {
	parserCmd.AddCommand(textCmd)

	textCmd.Flags().StringVarP(&textCmdOptions.Path, "path", "p", "", "A file or path with text file(s).")
	textCmd.Flags().StringVarP(&textFileList, "file-list", "f", "", "A file with one path to scan per line.")
}
