package clarity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type glossaryStore interface {
	Load(ctx context.Context) (*domain.Glossary, error)
}

type reloader interface {
	Reload(ctx context.Context) (*domain.Glossary, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service answers glossary questions.
type Service struct {
	log   *slog.Logger
	store glossaryStore
}

// NewService creates a new clarity Service.
func NewService(logger *slog.Logger, store glossaryStore) *Service {
	return &Service{
		log:   logger.With("service", "clarity"),
		store: store,
	}
}

// Predict loads the glossary once and matches text against it.
func (s *Service) Predict(ctx context.Context, text string) (domain.MatchResult, error) {
	g, err := s.store.Load(ctx)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("predict: %w", err)
	}

	res := Match(text, g)
	s.log.DebugContext(ctx, "predict",
		slog.String("tier", res.Tier.String()),
		slog.String("matched_term", res.MatchedTerm),
		slog.Float64("confidence", res.Confidence),
	)
	return res, nil
}

// Stats summarizes the current glossary.
func (s *Service) Stats(ctx context.Context) (domain.GlossaryStats, error) {
	g, err := s.store.Load(ctx)
	if err != nil {
		return domain.GlossaryStats{}, fmt.Errorf("stats: %w", err)
	}
	return Summarize(g), nil
}

// Reload publishes a fresh glossary when the store caches one. Stores that
// read from disk on every call are only checked for a loadable file.
// It returns the number of terms now being served.
func (s *Service) Reload(ctx context.Context) (int, error) {
	var (
		g   *domain.Glossary
		err error
	)
	if r, ok := s.store.(reloader); ok {
		g, err = r.Reload(ctx)
	} else {
		g, err = s.store.Load(ctx)
	}
	if err != nil {
		s.log.WarnContext(ctx, "glossary reload failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("reload: %w", err)
	}

	s.log.InfoContext(ctx, "glossary reloaded", slog.Int("terms", g.Len()))
	return g.Len(), nil
}
