package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// citationPattern matches bracketed policy IDs like [Return3.1].
var citationPattern = regexp.MustCompile(`\[([A-Za-z]+\d+\.\d+)\]`)

var doubleSpacePattern = regexp.MustCompile(`\s{2,}`)

// PolicySet is the subset of the knowledge base the validator needs.
type PolicySet interface {
	Has(id string) bool
}

// Validation reports the outcome of checking every citation in a text.
type Validation struct {
	IsValid          bool     `json:"isValid"`
	TotalCitations   int      `json:"totalCitations"`
	ValidCitations   []string `json:"validCitations"`
	InvalidCitations []string `json:"invalidCitations"`
	Message          string   `json:"message"`
}

// ExtractCitations returns the policy IDs cited in a text, deduplicated in
// insertion order.
func ExtractCitations(text string) []string {
	matches := citationPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]bool, len(matches))
	citations := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		citations = append(citations, id)
	}

	return citations
}

// ValidateCitations checks every citation in the text against the knowledge
// base. A text without citations is valid, not an error.
func ValidateCitations(text string, kb PolicySet) Validation {
	citations := ExtractCitations(text)

	if len(citations) == 0 {
		return Validation{
			IsValid:          true,
			ValidCitations:   []string{},
			InvalidCitations: []string{},
			Message:          "No citations found",
		}
	}

	valid := []string{}
	invalid := []string{}
	for _, citation := range citations {
		if kb.Has(citation) {
			valid = append(valid, citation)
		} else {
			invalid = append(invalid, citation)
		}
	}

	isValid := len(invalid) == 0
	message := fmt.Sprintf("All %d citation(s) are valid", len(citations))
	if !isValid {
		message = fmt.Sprintf("Found %d invalid citation(s): %s", len(invalid), strings.Join(invalid, ", "))
	}

	return Validation{
		IsValid:          isValid,
		TotalCitations:   len(citations),
		ValidCitations:   valid,
		InvalidCitations: invalid,
		Message:          message,
	}
}

// RemoveInvalidCitations strips every invalid [ID] token from the text and
// collapses the double spaces left behind.
func RemoveInvalidCitations(text string, kb PolicySet) string {
	validation := ValidateCitations(text, kb)
	if validation.IsValid {
		return text
	}

	cleaned := text
	for _, invalid := range validation.InvalidCitations {
		token := regexp.MustCompile(`\[` + regexp.QuoteMeta(invalid) + `\]`)
		cleaned = token.ReplaceAllString(cleaned, "")
	}

	return strings.TrimSpace(doubleSpacePattern.ReplaceAllString(cleaned, " "))
}
