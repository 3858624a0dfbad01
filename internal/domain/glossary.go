package domain

// Entry is one glossary term with its definition, both as stored.
type Entry struct {
	Term       string
	Definition string
}

// Glossary is an immutable, insertion-ordered mapping of term to definition.
// Iteration order is the order of the backing file and decides which entry
// wins when several match.
type Glossary struct {
	entries []Entry
}

// NewGlossary builds a Glossary from entries in order. A repeated term keeps
// the position of its first occurrence and takes the later definition.
func NewGlossary(entries ...Entry) *Glossary {
	g := &Glossary{entries: make([]Entry, 0, len(entries))}
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.Term]; ok {
			g.entries[i].Definition = e.Definition
			continue
		}
		pos[e.Term] = len(g.entries)
		g.entries = append(g.entries, e)
	}
	return g
}

// Len returns the number of distinct terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Entries returns a copy of the entries in glossary order.
func (g *Glossary) Entries() []Entry {
	if g == nil {
		return nil
	}
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Terms returns the terms in glossary order.
func (g *Glossary) Terms() []string {
	if g == nil {
		return nil
	}
	out := make([]string, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.Term
	}
	return out
}

// Equal reports whether both glossaries hold the same entries in the same order.
func (g *Glossary) Equal(other *Glossary) bool {
	if g.Len() != other.Len() {
		return false
	}
	for i := range g.Len() {
		if g.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}

// GlossaryStats is the descriptive summary of a glossary.
type GlossaryStats struct {
	TotalTerms  int
	Categories  []string
	SampleTerms []string
}
