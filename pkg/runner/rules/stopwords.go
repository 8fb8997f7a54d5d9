package rules

import "strings"

// DefaultStopWords flag matches that are almost certainly placeholders.
var DefaultStopWords = []string{
	"exemplo",
	"example",
	"sample",
	"lorem",
	"teste",
}

// EmailDomainStopWords are throwaway or documentation domains.
var EmailDomainStopWords = []string{
	"example.com",
	"example.org",
	"email.com",
	"domain.com",
	"test.com",
	"localhost",
}

func ContainsStopWord(s string) (bool, string) {
	s = strings.ToLower(s)
	for _, stopWord := range DefaultStopWords {
		if strings.Contains(s, strings.ToLower(stopWord)) {
			return true, stopWord
		}
	}
	return false, ""
}

func ContainsEmailDomainStopWord(s string) (bool, string) {
	s = strings.ToLower(s)
	for _, stopWord := range EmailDomainStopWords {
		if strings.Contains(s, strings.ToLower(stopWord)) {
			return true, stopWord
		}
	}
	return false, ""
}
