package rules

import (
	re "regexp"
	"time"

	"github.com/helviojunior/brparser/pkg/brdoc"
	"github.com/helviojunior/brparser/pkg/models"
)

func CPF() *Rule {
	// define rule
	r := &Rule{
		RuleID:      "CPF",
		Description: "Extract CPF documents.",
		Regex:       re.MustCompile(`\b(\d{3}[.\-]?\d{3}[.\-]?\d{3}[.\-]?\d{2})\b`),
		Keywords:    []string{},
		PostProcessor: func(finding *models.Finding) (bool, error) {
			if !brdoc.IsCPF(finding.Secret) {
				return false, nil
			}

			digits := brdoc.DigitString(finding.Secret)
			finding.Document = models.Document{
				Time:      time.Now(),
				Kind:      "cpf",
				Raw:       finding.Secret,
				Digits:    digits,
				Formatted: brdoc.FormatCPF(digits),
			}
			return true, nil
		},
	}

	return r
}
