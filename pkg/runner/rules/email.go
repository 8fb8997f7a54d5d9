package rules

import (
	"net/mail"
	re "regexp"
	"strings"
	"time"

	"github.com/helviojunior/brparser/pkg/models"
)

func Email() *Rule {
	// define rule
	r := &Rule{
		RuleID:              "Email",
		Description:         "Extract Emails.",
		Regex:               re.MustCompile(`(?i)(\b[a-z0-9._-]+(@|%40)[a-z0-9.-]+\.[a-z]{2,})`),
		Entropy:             2.1,
		Keywords:            []string{"@", "%40"},
		CheckGlobalStopWord: false,
		PostProcessor: func(finding *models.Finding) (bool, error) {
			var m *mail.Address
			var err error

			e1 := strings.Trim(finding.Secret, ". ")
			e1 = strings.Replace(e1, "%40", "@", -1)
			e1 = strings.Replace(e1, ".@", "@", -1)
			e1 = strings.Replace(e1, "@.", "@", -1)
			if m, err = mail.ParseAddress(e1); err != nil {
				return false, err
			}

			domain := strings.SplitN(m.Address, "@", 2)[1]
			if ok, _ := ContainsEmailDomainStopWord(domain); ok {
				return false, nil
			}

			finding.Document = models.Document{
				Time:      time.Now(),
				Kind:      "email",
				Raw:       finding.Secret,
				Domain:    domain,
				Formatted: strings.ToLower(m.Address),
			}
			return true, nil
		},
	}

	return r
}
