package rules

import (
	re "regexp"
	"time"

	"github.com/helviojunior/brparser/pkg/brdoc"
	"github.com/helviojunior/brparser/pkg/models"
)

func CNPJ() *Rule {
	// define rule
	r := &Rule{
		RuleID:      "CNPJ",
		Description: "Extract CNPJ documents.",
		Regex:       re.MustCompile(`\b(\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2})\b`),
		Keywords:    []string{},
		PostProcessor: func(finding *models.Finding) (bool, error) {
			if !brdoc.IsCNPJ(finding.Secret) {
				return false, nil
			}

			digits := brdoc.DigitString(finding.Secret)
			finding.Document = models.Document{
				Time:      time.Now(),
				Kind:      "cnpj",
				Raw:       finding.Secret,
				Digits:    digits,
				Formatted: brdoc.FormatCNPJ(digits),
			}
			return true, nil
		},
	}

	return r
}
