package filter

import (
	"strings"
	"unicode"

	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/scraper"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

// ShouldIncludeJob applies the configured keyword rules to a listing title.
// An empty include list admits everything; any exclude hit rejects.
func ShouldIncludeJob(cfg *config.Config, job scraper.Job) bool {
	text := normalizeText(job.Title)

	if len(cfg.Keywords) > 0 {
		matched := false
		for _, keyword := range cfg.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(text, normalizeText(keyword)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, excluded := range cfg.ExcludeKeywords {
		if excluded == "" {
			continue
		}
		if strings.Contains(text, normalizeText(excluded)) {
			return false
		}
	}

	return true
}
