package recipe

import (
	"context"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Enricher looks up one link per query, in order. An empty string means
// no link was found for that position.
type Enricher interface {
	Enrich(ctx context.Context, queries []string) []string
}

// Service generates recipes and attaches video links.
type Service struct {
	gen      *Generator
	enricher Enricher
	log      *logger.Logger
}

// NewService combines a generator with an optional enricher.
func NewService(gen *Generator, enricher Enricher, log *logger.Logger) *Service {
	return &Service{gen: gen, enricher: enricher, log: log}
}

// Suggest returns enriched recipes for guided preferences.
func (s *Service) Suggest(ctx context.Context, prefs domain.Preferences) []domain.Recipe {
	return s.enrich(ctx, s.gen.Generate(ctx, prefs))
}

// Direct returns enriched recipes for a named dish.
func (s *Service) Direct(ctx context.Context, dish, lang string) []domain.Recipe {
	return s.enrich(ctx, s.gen.GenerateDirect(ctx, dish, lang))
}

func (s *Service) enrich(ctx context.Context, recipes []domain.Recipe) []domain.Recipe {
	if s.enricher == nil || len(recipes) == 0 {
		return recipes
	}
	queries := make([]string, len(recipes))
	for i, r := range recipes {
		queries[i] = r.VideoQuery()
	}

	links := s.enricher.Enrich(ctx, queries)
	found := 0
	for i := range recipes {
		if i < len(links) && links[i] != "" {
			recipes[i].VideoURL = links[i]
			found++
		}
	}
	s.log.Debug("attached %d/%d video links", found, len(recipes))
	return recipes
}
