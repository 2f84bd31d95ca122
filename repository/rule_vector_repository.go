package repository

import (
	"context"
	"fmt"
	"strings"

	"contractguard-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RuleVectorRepository handles the pgvector index over the rule catalog.
// One row per rule pattern: the embedding of its description plus top
// keywords, alongside the metadata the semantic validator copies onto
// matches.
type RuleVectorRepository struct {
	db *pgxpool.Pool
}

// NewRuleVectorRepository creates a new rule vector repository
func NewRuleVectorRepository(db *pgxpool.Pool) *RuleVectorRepository {
	return &RuleVectorRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// QueryNearest returns up to k patterns nearest to the query vector by
// cosine similarity, filtered to similarity >= minSimilarity.
// Implements service.VectorSearcher.
func (r *RuleVectorRepository) QueryNearest(
	ctx context.Context,
	vector []float64,
	k int,
	minSimilarity float64,
) ([]models.RuleNeighbor, error) {
	if len(vector) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(vector))
	}

	vectorStr := formatVector(vector)

	// pgvector's <=> operator is cosine distance; similarity = 1 - distance
	query := `
		SELECT
			pattern_id,
			violation_type,
			risk_level,
			risk_score,
			linked_section,
			description,
			1 - (embedding <=> $1::vector) AS similarity
		FROM rule_vectors
		WHERE 1 - (embedding <=> $1::vector) >= $2
		ORDER BY embedding <=> $1::vector
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, vectorStr, minSimilarity, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query rule vectors: %w", err)
	}
	defer rows.Close()

	var neighbors []models.RuleNeighbor
	for rows.Next() {
		var n models.RuleNeighbor
		err := rows.Scan(
			&n.PatternID,
			&n.ViolationType,
			&n.RiskLevel,
			&n.RiskScore,
			&n.LinkedSection,
			&n.Description,
			&n.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule neighbor: %w", err)
		}
		neighbors = append(neighbors, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule neighbors: %w", err)
	}

	return neighbors, nil
}

// Upsert inserts or replaces the vector row for one rule pattern. Used
// by the offline index builder.
func (r *RuleVectorRepository) Upsert(ctx context.Context, pattern *models.RulePattern, embedding []float64) error {
	if len(embedding) != 768 {
		return fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	query := `
		INSERT INTO rule_vectors (
			pattern_id, violation_type, risk_level, risk_score,
			linked_section, description, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
		ON CONFLICT (pattern_id) DO UPDATE SET
			violation_type = EXCLUDED.violation_type,
			risk_level = EXCLUDED.risk_level,
			risk_score = EXCLUDED.risk_score,
			linked_section = EXCLUDED.linked_section,
			description = EXCLUDED.description,
			embedding = EXCLUDED.embedding`

	_, err := r.db.Exec(
		ctx, query,
		pattern.PatternID,
		pattern.ViolationType,
		pattern.RiskLevel,
		pattern.RiskScore,
		pattern.LinkedSection,
		pattern.Description,
		formatVector(embedding),
	)
	return err
}

// Count returns the number of indexed patterns
func (r *RuleVectorRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM rule_vectors").Scan(&count)
	return count, err
}
