package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"corkcount/internal/models"
	"corkcount/internal/store"

	"github.com/google/uuid"
)

const wineColumns = `id, name, winery, vintage, type, varietal, flavor_notes, description, price, quantity, tags, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWine(row rowScanner) (*models.Wine, error) {
	var (
		w       models.Wine
		vintage sql.NullInt64
		tags    sql.NullString
	)
	err := row.Scan(
		&w.ID, &w.Name, &w.Winery, &vintage, &w.Type, &w.Varietal,
		&w.FlavorNotes, &w.Description, &w.Price, &w.Quantity, &tags,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vintage.Valid {
		v := int(vintage.Int64)
		w.Vintage = &v
	}
	if w.Tags, err = decodeTags(tags); err != nil {
		return nil, fmt.Errorf("decode tags of wine %s: %w", w.ID, err)
	}
	return &w, nil
}

func (s *Store) ListWines(ctx context.Context, filter store.WineFilter) ([]*models.Wine, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Type != "" {
		where = append(where, "LOWER(type) = LOWER(?)")
		args = append(args, filter.Type)
	}
	for _, tag := range filter.Tags {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(wines.tags) WHERE json_each.value = ?)")
		args = append(args, tag)
	}

	query := `SELECT ` + wineColumns + ` FROM wines`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC, id ASC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wines: %w", err)
	}
	defer rows.Close()

	wines := []*models.Wine{}
	for rows.Next() {
		w, err := scanWine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wine row: %w", err)
		}
		wines = append(wines, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wine rows: %w", err)
	}
	return wines, nil
}

func (s *Store) GetWine(ctx context.Context, id string) (*models.Wine, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wineColumns+` FROM wines WHERE id = ?`, id)
	w, err := scanWine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wine by id %s: %w", id, err)
	}
	return w, nil
}

func (s *Store) CreateWine(ctx context.Context, wine *models.Wine) error {
	if wine.ID == "" {
		wine.ID = uuid.NewString()
	}
	tags, err := encodeTags(wine.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	var vintage sql.NullInt64
	if wine.Vintage != nil {
		vintage = sql.NullInt64{Int64: int64(*wine.Vintage), Valid: true}
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wines (`+wineColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wine.ID, wine.Name, wine.Winery, vintage, wine.Type, wine.Varietal,
		wine.FlavorNotes, wine.Description, wine.Price, wine.Quantity, tags,
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wine %q already exists: %w", wine.Name, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert wine: %w", err)
	}
	wine.CreatedAt, wine.UpdatedAt = now, now
	return nil
}

func (s *Store) UpdateWineTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := encodeTags(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE wines SET tags = ?, updated_at = ? WHERE id = ?`,
		encoded, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update tags for wine %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for wine %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("wine %s not found to update tags: %w", id, store.ErrNotFound)
	}
	return nil
}

// TagCounts returns how many wines carry each tag, most used first.
func (s *Store) TagCounts(ctx context.Context) ([]models.TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.value, COUNT(*) AS wines
		FROM wines, json_each(wines.tags) AS t
		WHERE wines.tags IS NOT NULL
		GROUP BY t.value
		ORDER BY wines DESC, t.value ASC`)
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
