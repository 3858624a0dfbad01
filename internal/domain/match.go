package domain

// MatchTier identifies which matching pass produced a result.
type MatchTier int

const (
	TierNone MatchTier = iota
	TierTerm
	TierWord
)

func (t MatchTier) String() string {
	switch t {
	case TierTerm:
		return "term"
	case TierWord:
		return "word"
	default:
		return "none"
	}
}

// MatchResult is the answer produced for a single query.
type MatchResult struct {
	Answer      string
	Confidence  float64
	MatchedTerm string
	Matched     bool
	Tier        MatchTier
}
