package search

import (
	"fmt"
	"strings"

	"ai-sportscast-be/internal/constant"
)

const maxFindings = 5

// CategoryPeople asks Exa for person-centric results and triggers the
// stricter athlete-signal filter.
const CategoryPeople = "people"

var querySignalTerms = []string{"ufc", "mma", "fighter", "athlete", "boxer", "sport"}

// EnhanceQuery disambiguates bare-name people queries by appending
// athlete context.
func EnhanceQuery(query, category string) string {
	if category != CategoryPeople {
		return query
	}
	lower := strings.ToLower(query)
	for _, term := range querySignalTerms {
		if strings.Contains(lower, term) {
			return query
		}
	}
	return query + " professional athlete fighter"
}

// Filter drops spam and, for people-category results, anything without
// a sport signal in the combined title+highlights+URL text. Dropped
// results are never surfaced. At most five findings survive.
func Filter(findings []Finding, category string) []Finding {
	out := make([]Finding, 0, len(findings))

	for _, f := range findings {
		titleLower := strings.ToLower(f.Title)
		urlLower := strings.ToLower(f.URL)

		if containsAny(titleLower, constant.SpamIndicators) || containsAny(urlLower, constant.SpamIndicators) {
			continue
		}

		if category == CategoryPeople {
			combined := titleLower + " " + strings.ToLower(strings.Join(f.Highlights, " ")) + " " + urlLower
			if !containsAny(combined, constant.SportsIndicators) {
				continue
			}
		}

		out = append(out, f)
		if len(out) == maxFindings {
			break
		}
	}
	return out
}

// Condense renders findings as the short textual summary handed to the
// reasoning engine: title, first key point, URL. Raw payloads never
// cross that boundary.
func Condense(findings []Finding) string {
	if len(findings) == 0 {
		return "No relevant results found."
	}

	var b strings.Builder
	for i, f := range findings {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Title)
		if len(f.Highlights) > 0 {
			fmt.Fprintf(&b, "   %s\n", f.Highlights[0])
		}
		fmt.Fprintf(&b, "   Source: %s\n", f.URL)
	}
	return b.String()
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
