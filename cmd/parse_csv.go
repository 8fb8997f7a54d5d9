package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	resolver "github.com/helviojunior/gopathresolver"

	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/internal/islazy"
	"github.com/helviojunior/brparser/internal/tools"
	"github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/runner"
	parsers "github.com/helviojunior/brparser/pkg/runner/parsers"
	"github.com/spf13/cobra"
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Transform CSV datasets using a column mapping",
	Long: ascii.LogoHelp(ascii.Markdown(`
# parse csv

Apply validation, classification and formatting expressions to the
columns of a CSV dataset. The mapping file assigns expressions to
columns by name:

    columns:
      - name: documento
        expressions: [is_cpf_or_cnpj, format_cpf_cnpj]
      - name: telefone
        expressions: [format_phone]
        replace: true

Derived columns are appended to the transformed copy unless the column
is marked as replace.
`)),
	Example: `
   - brparser parse csv -p ./data.csv -m mapping.yaml
   - brparser parse csv -p ./data.csv -m mapping.yaml -o ./out
   - brparser parse csv -p ./datasets/ -m mapping.yaml -o ./out --write-jsonl
`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if opts.Parser.Path == "" {
			return errors.New("a CSV file or path must be specified")
		}

		if !islazy.FileExists(opts.Parser.Path) {
			return errors.New("CSV file or path is not readable")
		}

		if opts.Parser.Mapping == "" {
			return errors.New("a mapping file must be specified")
		}

		opts.Parser.Path, err = resolver.ResolveFullPath(opts.Parser.Path)
		if err != nil {
			return err
		}

		opts.Parser.Mapping, err = resolver.ResolveFullPath(opts.Parser.Mapping)
		if err != nil {
			return err
		}

		if opts.Parser.OutputPath != "" {
			opts.Parser.OutputPath, err = resolver.ResolveFullPath(opts.Parser.OutputPath)
			if err != nil {
				return err
			}
		}

		// An slog-capable logger to use with drivers and runners
		logger := slog.New(log.Logger)

		// Configure the driver
		parserDriver, err = parsers.NewCsv(logger, *opts)
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

		if ft, err = tools.FileType(opts.Parser.Path); err != nil {
			log.Error("error getting path type", "err", err)
			os.Exit(2)
		}

		log.Debug("starting csv parsing", "path", opts.Parser.Path, "type", ft)

		go func() {
			defer close(scanRunner.Files)

			if ft == "file" {
				scanRunner.Files <- opts.Parser.Path
				return
			}

			err := filepath.WalkDir(opts.Parser.Path, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					log.Debug("error walking path", "path", path, "err", err)
					return nil
				}
				if d.IsDir() {
					return nil
				}
				if strings.ToLower(filepath.Ext(path)) != ".csv" {
					log.Debug("Ignoring non CSV file", "file", d.Name())
					return nil
				}
				scanRunner.Files <- path
				return nil
			})
			if err != nil {
				log.Error("error listing directory files", "err", err)
			}
		}()

		log.Info("Starting CSV parser")
		status := scanRunner.Run()
		scanRunner.Close()

		printSummary(status)
	},
}

func init() {
	parserCmd.AddCommand(csvCmd)

	csvCmd.Flags().StringVarP(&opts.Parser.Path, "path", "p", "", "A CSV file or a path with CSV file(s).")
	csvCmd.Flags().StringVarP(&opts.Parser.Mapping, "mapping", "m", "", "YAML file assigning expressions to columns")
	csvCmd.Flags().StringVarP(&opts.Parser.OutputPath, "output", "o", "", "Folder to receive the transformed CSV copies")
}
