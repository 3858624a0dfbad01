package clarity

import (
	"sort"
	"strings"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

const sampleTermCount = 5

// Summarize derives descriptive statistics from a glossary. Categories are the
// distinct first words of all terms; terms without any word are skipped.
func Summarize(g *domain.Glossary) domain.GlossaryStats {
	seen := make(map[string]struct{})
	categories := []string{}
	terms := g.Terms()

	for _, term := range terms {
		words := strings.Fields(term)
		if len(words) == 0 {
			continue
		}
		if _, ok := seen[words[0]]; ok {
			continue
		}
		seen[words[0]] = struct{}{}
		categories = append(categories, words[0])
	}
	sort.Strings(categories)

	samples := terms
	if len(samples) > sampleTermCount {
		samples = samples[:sampleTermCount]
	}

	return domain.GlossaryStats{
		TotalTerms:  len(terms),
		Categories:  categories,
		SampleTerms: samples,
	}
}
