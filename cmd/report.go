package cmd

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/helviojunior/brparser/internal/ascii"
	"github.com/helviojunior/brparser/pkg/log"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/spf13/cobra"
)

type ConvStatus struct {
	Converted  int
	Cpf        int
	Cnpj       int
	Phone      int
	Email      int
	Spin       string
	IsTerminal bool
}

var dateFilter = ""
var rptFilter = ""
var filterList = []string{}
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with brparser reports",
	Long: ascii.LogoHelp(ascii.Markdown(`
# report

Work with brparser reports.
`)),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		// Annoying quirk, but because I'm overriding PersistentPreRun
		// here which overrides the parent it seems.
		// So we need to explicitly call the parent's one now.
		if err = rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}

		startTime = time.Now()

		re := regexp.MustCompile("[^a-zA-Z0-9@-_.]")
		s := strings.Split(rptFilter, ",")
		for _, s1 := range s {
			s2 := strings.ToLower(strings.Trim(s1, " "))
			s2 = re.ReplaceAllString(s2, "")
			if s2 != "" {
				filterList = append(filterList, s2)
			}
		}

		if dateFilter != "" {
			layout := "2006-01-02"

			t, err := time.Parse(layout, dateFilter)
			if err != nil {
				return err
			}
			opts.DateFilter = &t

			log.Warn("Date filter (start-date): " + t.Format("2006-01-02"))
		}

		if len(filterList) > 0 {
			log.Warn("Filter list: " + strings.Join(filterList, ", "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.PersistentFlags().StringVar(&rptFilter, "filter", "", "Comma-separated terms to filter results")
	reportCmd.PersistentFlags().StringVar(&dateFilter, "date-from", "", "Minimum date to convert. (Format: yyyy-mm-dd)")
}

func (st *ConvStatus) Print() {
	if st.IsTerminal {
		st.Spin = ascii.GetNextSpinner(st.Spin)

		fmt.Fprintf(os.Stderr, "%s\n %s converted %d: cpf: %d, cnpj: %d, phone: %d, email: %d\r\033[A",
			"                                                                        ",
			ascii.ColoredSpin(st.Spin),
			st.Converted,
			st.Cpf,
			st.Cnpj,
			st.Phone,
			st.Email)

	} else {
		log.Info("STATUS",
			"converted", st.Converted,
			"cpf", st.Cpf, "cnpj", st.Cnpj, "phone", st.Phone, "email", st.Email)
	}
}

func (st *ConvStatus) CountDocument(kind string) {
	switch kind {
	case "cpf":
		st.Cpf++
	case "cnpj":
		st.Cnpj++
	case "phone":
		st.Phone++
	case "email":
		st.Email++
	}
}

func containsFilterWord(s string) bool {
	//If filter list is empty, always return true
	if len(filterList) == 0 {
		return true
	}

	s = strings.ToLower(strings.Trim(s, " "))
	if s == "" {
		return false
	}
	for _, f := range filterList {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// keepDocument applies the filter terms and date filter to a document.
func keepDocument(doc models.Document) bool {
	if opts.DateFilter != nil && doc.Time.Before(*opts.DateFilter) {
		return false
	}
	return containsFilterWord(doc.Raw) ||
		containsFilterWord(doc.Formatted) ||
		containsFilterWord(doc.Domain) ||
		containsFilterWord(doc.NearText)
}

func getFilteredOnly(file models.File) *models.File {
	nf := file.Clone()

	for _, doc := range file.Documents {
		if keepDocument(doc) {
			nf.Documents = append(nf.Documents, doc)
		}
	}

	if !containsFilterWord(file.FileName) && len(nf.Documents) == 0 {
		return nil
	}

	return nf
}

func prepareSQL(fields []string) string {
	sql := ""
	for _, f := range fields {
		for _, w := range filterList {
			if sql != "" {
				sql += " or "
			}
			sql += " " + f + " like '%" + w + "%' "
		}
	}
	if sql != "" {
		sql = " and (" + sql + ")"
	}
	return sql
}

func clearScreen() {
	ascii.ClearLine()
	ascii.ShowCursor()
}
