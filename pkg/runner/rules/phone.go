package rules

import (
	re "regexp"
	"time"

	"github.com/helviojunior/brparser/pkg/brdoc"
	"github.com/helviojunior/brparser/pkg/models"
	"github.com/helviojunior/brparser/pkg/phone"
)

func Phone() *Rule {
	// define rule
	r := &Rule{
		RuleID:      "Phone",
		Description: "Extract Brazilian phone numbers.",
		// International forms only: a bare local number inside free text
		// is indistinguishable from any other digit run
		Regex:    re.MustCompile(`(\+?55\s?\(?\d{2}\)?\s?9?\d{4}[\s\-]?\d{4})\b`),
		Keywords: []string{"55"},
		PostProcessor: func(finding *models.Finding) (bool, error) {
			if !phone.IsValidFlexible(finding.Secret) {
				return false, nil
			}

			finding.Document = models.Document{
				Time:      time.Now(),
				Kind:      "phone",
				Raw:       finding.Secret,
				Digits:    brdoc.DigitString(finding.Secret),
				Formatted: phone.Format(finding.Secret),
			}
			return true, nil
		},
	}

	return r
}
