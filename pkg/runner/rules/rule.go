package rules

import (
	"regexp"

	"github.com/helviojunior/brparser/pkg/models"
)

// Rule describes one extraction pattern. Keywords, when present, feed the
// runner prefilter: content without any keyword skips the regex entirely.
// The PostProcessor validates the raw match (checksum, address parsing)
// and fills the finding document; returning false drops the match
// silently.
type Rule struct {
	RuleID      string
	Description string

	Regex       *regexp.Regexp
	SecretGroup int

	// Entropy is the minimum shannon entropy of the match
	Entropy float32

	Keywords []string

	CheckGlobalStopWord bool

	PostProcessor func(finding *models.Finding) (bool, error)
}
