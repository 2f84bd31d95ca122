package service

import (
	"context"
	"fmt"
	"log"
	"math"

	"contractguard-backend/models"
	"contractguard-backend/rules"
)

// VectorSearcher queries the rule vector index for nearest neighbors
type VectorSearcher interface {
	QueryNearest(ctx context.Context, vector []float64, k int, minSimilarity float64) ([]models.RuleNeighbor, error)
}

const (
	// Clauses shorter than this are too short to be semantically
	// meaningful and are skipped.
	minSemanticLength = 50

	// Nearest-neighbor fanout and acceptance threshold. Raising the
	// threshold reduces noise at the cost of missed paraphrases.
	semanticTopK      = 3
	semanticThreshold = 0.75
)

// SemanticValidator flags clauses by embedding them and querying a
// vector index of the rule catalog. It is strictly best-effort: the
// caller treats any error as an empty result and the analysis proceeds
// on the keyword channel alone.
type SemanticValidator struct {
	embedder Embedder
	searcher VectorSearcher
	guard    *FalsePositiveGuard
}

// NewSemanticValidator creates a semantic validator
func NewSemanticValidator(embedder Embedder, searcher VectorSearcher, guard *FalsePositiveGuard) *SemanticValidator {
	return &SemanticValidator{
		embedder: embedder,
		searcher: searcher,
		guard:    guard,
	}
}

// Validate embeds each eligible clause and keeps the best index neighbor
// above the similarity threshold, subject to the false-positive guard.
// Embeddings are cached in the supplied request-scoped cache.
//
// Errors are returned so the caller can make the degrade-gracefully
// contract explicit: a non-nil error always comes with a nil slice and
// means "use keyword results only".
func (v *SemanticValidator) Validate(ctx context.Context, clauses []models.Clause, cache *EmbeddingCache) ([]models.SemanticMatch, error) {
	if v.embedder == nil || v.searcher == nil {
		return nil, fmt.Errorf("semantic channel not configured")
	}

	var matches []models.SemanticMatch

	for _, clause := range clauses {
		if len(clause.Text) < minSemanticLength {
			continue
		}

		match, ok, err := v.matchClause(ctx, clause, cache)
		if err != nil {
			// One failed embedding or index query fails the whole
			// channel; partial semantic results would make reports
			// non-deterministic about which clauses were screened.
			return nil, err
		}
		if ok {
			matches = append(matches, match)
		}
	}

	return matches, nil
}

// matchClause embeds one clause and evaluates its best index neighbor
func (v *SemanticValidator) matchClause(ctx context.Context, clause models.Clause, cache *EmbeddingCache) (models.SemanticMatch, bool, error) {
	vec, ok := cache.Get(clause.Text)
	if !ok {
		var err error
		vec, err = v.embedder.Embed(ctx, clause.Text)
		if err != nil {
			return models.SemanticMatch{}, false, fmt.Errorf("embedding clause %d: %w", clause.ID, err)
		}
		cache.Put(clause.Text, vec)
	}

	neighbors, err := v.searcher.QueryNearest(ctx, vec, semanticTopK, semanticThreshold)
	if err != nil {
		return models.SemanticMatch{}, false, fmt.Errorf("querying rule index for clause %d: %w", clause.ID, err)
	}
	if len(neighbors) == 0 {
		return models.SemanticMatch{}, false, nil
	}

	best := neighbors[0]
	for _, n := range neighbors[1:] {
		if n.Similarity > best.Similarity {
			best = n
		}
	}
	if best.Similarity < semanticThreshold {
		return models.SemanticMatch{}, false, nil
	}

	if v.guard != nil && v.guard.Vetoes(best.ViolationType, clause.Text) {
		log.Printf("Semantic match on clause %d (%s) vetoed as safe boilerplate", clause.ID, best.ViolationType)
		return models.SemanticMatch{}, false, nil
	}

	section := rules.Section(best.LinkedSection)
	return models.SemanticMatch{
		ClauseID:        clause.ID,
		ClauseText:      clause.Text,
		ViolationType:   best.ViolationType,
		SectionNumber:   section.Number,
		SectionTitle:    section.Title,
		SectionFullText: section.FullText,
		RiskLevel:       best.RiskLevel,
		RiskScore:       best.RiskScore,
		Similarity:      math.Round(best.Similarity*100) / 100,
		Explanation:     best.Description,
		GovURL:          section.GovURL,
	}, true, nil
}
