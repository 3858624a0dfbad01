package clarity

import (
	"strings"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

// Fixed confidences per tier.
const (
	TermConfidence = 0.95
	WordConfidence = 0.75
)

// FallbackAnswer is returned when no glossary term matches the query.
const FallbackAnswer = "I couldn't find information about this topic. " +
	"Try asking about FinTech concepts like blockchain, cryptocurrency, or digital banking."

// Match finds the best glossary entry for query.
//
// The first pass returns the earliest term whose lowercased text occurs
// anywhere in the lowercased query. Only if that finds nothing, the second
// pass returns the earliest term with any whitespace-separated word occurring
// in the query. Containment is raw: "AI" matches "rain".
func Match(query string, g *domain.Glossary) domain.MatchResult {
	q := strings.ToLower(query)
	entries := g.Entries()

	for _, e := range entries {
		term := strings.ToLower(e.Term)
		if term == "" {
			continue
		}
		if strings.Contains(q, term) {
			return matched(e, TermConfidence, domain.TierTerm)
		}
	}

	for _, e := range entries {
		for _, word := range strings.Fields(strings.ToLower(e.Term)) {
			if strings.Contains(q, word) {
				return matched(e, WordConfidence, domain.TierWord)
			}
		}
	}

	return domain.MatchResult{
		Answer:     FallbackAnswer,
		Confidence: 0,
		Tier:       domain.TierNone,
	}
}

func matched(e domain.Entry, confidence float64, tier domain.MatchTier) domain.MatchResult {
	return domain.MatchResult{
		Answer:      e.Term + ": " + e.Definition,
		Confidence:  confidence,
		MatchedTerm: e.Term,
		Matched:     true,
		Tier:        tier,
	}
}
