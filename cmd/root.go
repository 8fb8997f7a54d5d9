package cmd

import (
	"fmt"
	"os"
	"os/user"

	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/runner"
	"github.com/spf13/cobra"
)

var (
	opts    = &runner.Options{}
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "brparser",
	Short: "brparser extracts and validates brazilian documents from data files",
	Long:  ascii.Logo(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

		usr, err := user.Current()
		if err != nil {
			return err
		}

		opts.Writer.UserPath = usr.HomeDir

		if opts.Logging.Silence {
			log.EnableSilence()
		}

		if opts.Logging.Debug && !opts.Logging.Silence {
			log.EnableDebug()
			log.Debug("debug logging enabled")
		}

		if logFile != "" {
			if err := log.SetOutFile(logFile); err != nil {
				return err
			}
		}
		return nil
	},
}

func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceErrors = true
	err := rootCmd.Execute()
	if err != nil {
		var cmd string
		c, _, cerr := rootCmd.Find(os.Args[1:])
		if cerr == nil {
			cmd = c.Name()
		}

		v := "\n"

		if cmd != "" {
			v += fmt.Sprintf("An error occured running the `%s` command\n", cmd)
		} else {
			v += "An error has occured. "
		}

		v += "The error was:\n\n" + fmt.Sprintf("```%s```", err)
		fmt.Println(ascii.Markdown(v))

		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Logging.Debug, "debug-log", "D", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.Logging.Silence, "quiet", "q", false, "Silence (almost all) logging")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "L", "", "Also write log entries to this file")
}
