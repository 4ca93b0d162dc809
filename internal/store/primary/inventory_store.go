package primary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"corkcount/internal/models"
	"corkcount/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- Inventory Management ---

// ListWines returns wines ordered by name. An empty filter returns every wine.
func (s *StoreImpl) ListWines(ctx context.Context, filter store.WineFilter) ([]*models.Wine, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("LOWER(type) = LOWER($%d)", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		where = append(where, fmt.Sprintf("tags @> $%d", len(args)))
	}

	query := `SELECT ` + wineColumns + ` FROM wines`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name ASC, id ASC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wines: %w", err)
	}
	defer rows.Close()

	wines := []*models.Wine{}
	for rows.Next() {
		w := &models.Wine{}
		if err := scanWine(rows, w); err != nil {
			return nil, fmt.Errorf("failed to scan wine row: %w", err)
		}
		wines = append(wines, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wine rows: %w", err)
	}
	return wines, nil
}

func (s *StoreImpl) GetWine(ctx context.Context, id string) (*models.Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines WHERE id = $1`
	w := &models.Wine{}
	if err := scanWine(s.db.QueryRow(ctx, query, id), w); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wine by id %s: %w", id, err)
	}
	return w, nil
}

// CreateWine inserts a wine, assigning an id when none is set.
func (s *StoreImpl) CreateWine(ctx context.Context, wine *models.Wine) error {
	query := `
		INSERT INTO wines (
			id, name, winery, vintage, type, varietal,
			flavor_notes, description, price, quantity, tags,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	if wine.ID == "" {
		wine.ID = uuid.NewString()
	}
	now := time.Now()
	err := s.db.QueryRow(ctx, query,
		wine.ID, wine.Name, wine.Winery, wine.Vintage, wine.Type, wine.Varietal,
		wine.FlavorNotes, wine.Description, wine.Price, wine.Quantity, wine.Tags,
		now, now,
	).Scan(&wine.CreatedAt, &wine.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("wine %q already exists: %w", wine.Name, store.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert wine: %w", err)
	}
	return nil
}

func (s *StoreImpl) UpdateWineTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	query := `UPDATE wines SET tags = $1, updated_at = $2 WHERE id = $3`
	cmdTag, err := s.db.Exec(ctx, query, tags, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update tags for wine %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("wine %s not found to update tags: %w", id, store.ErrNotFound)
	}
	return nil
}

var _ store.InventoryStore = (*StoreImpl)(nil)
