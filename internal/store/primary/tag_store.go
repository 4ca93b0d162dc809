package primary

import (
	"context"
	"fmt"

	"corkcount/internal/models"
)

// --- Tag Usage ---

// TagCounts returns how many wines carry each tag, most used first.
func (s *StoreImpl) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	query := `
		SELECT t.tag, COUNT(*) AS wines
		FROM wines w, unnest(w.tags) AS t(tag)
		GROUP BY t.tag
		ORDER BY wines DESC, t.tag ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}
	defer rows.Close()

	counts := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag count: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag counts: %w", err)
	}
	return counts, nil
}
