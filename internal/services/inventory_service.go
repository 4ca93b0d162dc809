package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"corkcount/internal/models"
	"corkcount/internal/store"
	"corkcount/pkg/autotag"

	log "github.com/sirupsen/logrus"
)

// InventoryService is the CRUD layer over wines. It runs the tagging engine
// on new wines that arrive without tags.
type InventoryService struct {
	store         store.InventoryStore
	applyOnCreate bool
}

func NewInventoryService(is store.InventoryStore, applyOnCreate bool) *InventoryService {
	return &InventoryService{store: is, applyOnCreate: applyOnCreate}
}

type ListWinesParams struct {
	Limit      int
	Offset     int
	Type       string
	FilterTags []string
}

type CreateWineParams struct {
	Name        string   `json:"name" yaml:"name"`
	Winery      string   `json:"winery" yaml:"winery"`
	Vintage     *int     `json:"vintage" yaml:"vintage"`
	Type        string   `json:"type" yaml:"type"`
	Varietal    string   `json:"varietal" yaml:"varietal"`
	FlavorNotes string   `json:"flavor_notes" yaml:"flavor_notes"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Quantity    int      `json:"quantity" yaml:"quantity"`
	Tags        []string `json:"tags" yaml:"tags"`
}

func (p CreateWineParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", models.ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", models.ErrValidation)
	}
	return nil
}

func (s *InventoryService) ListWines(ctx context.Context, params ListWinesParams) ([]*models.Wine, error) {
	if params.Limit <= 0 {
		params.Limit = 50
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	wines, err := s.store.ListWines(ctx, store.WineFilter{
		Type:   strings.TrimSpace(params.Type),
		Tags:   autotag.SanitizeTags(params.FilterTags),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list wines: %w", err)
	}
	return wines, nil
}

func (s *InventoryService) GetWine(ctx context.Context, id string) (*models.Wine, error) {
	w, err := s.store.GetWine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get wine %s: %w", id, err)
	}
	return w, nil
}

// CreateWine validates and stores a wine. Supplied tags are sanitized; when
// none are supplied the engine's suggestion is stored instead.
func (s *InventoryService) CreateWine(ctx context.Context, params CreateWineParams) (*models.Wine, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	w := &models.Wine{
		Name:        strings.TrimSpace(params.Name),
		Winery:      strings.TrimSpace(params.Winery),
		Vintage:     params.Vintage,
		Type:        strings.TrimSpace(params.Type),
		Varietal:    strings.TrimSpace(params.Varietal),
		FlavorNotes: params.FlavorNotes,
		Description: params.Description,
		Price:       params.Price,
		Quantity:    params.Quantity,
	}
	if tags := autotag.SanitizeTags(params.Tags); len(tags) > 0 {
		w.Tags = tags
	} else if s.applyOnCreate {
		w.Tags = SuggestForWine(w)
	}

	if err := s.store.CreateWine(ctx, w); err != nil {
		return nil, fmt.Errorf("create wine: %w", err)
	}
	log.WithFields(log.Fields{"wine_id": w.ID, "tags": w.Tags}).Info("Created wine")
	return w, nil
}

// SetTags replaces the tags of a wine with the sanitized form of tags.
func (s *InventoryService) SetTags(ctx context.Context, id string, tags []string) ([]string, error) {
	clean := autotag.SanitizeTags(tags)
	if err := s.store.UpdateWineTags(ctx, id, clean); err != nil {
		return nil, fmt.Errorf("set tags for wine %s: %w", id, err)
	}
	return clean, nil
}

// TagUsage returns the number of wines per tag, most used first.
func (s *InventoryService) TagUsage(ctx context.Context) ([]models.TagCount, error) {
	counts, err := s.store.TagCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("tag usage: %w", err)
	}
	return counts, nil
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// ImportWines creates each wine independently. Wines that already exist are
// skipped; any other failure is recorded and the import continues.
func (s *InventoryService) ImportWines(ctx context.Context, items []CreateWineParams) *ImportResult {
	res := &ImportResult{Errors: []string{}}
	for i, item := range items {
		if _, err := s.CreateWine(ctx, item); err != nil {
			label := item.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			if errors.Is(err, store.ErrDuplicate) {
				res.Skipped++
				continue
			}
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to import %s: %v", label, err))
			continue
		}
		res.Created++
	}
	return res
}
