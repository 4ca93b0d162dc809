package services

import (
	"context"
	"fmt"

	"corkcount/internal/models"
	"corkcount/internal/store"
	"corkcount/pkg/autotag"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// NoWinesMessage is reported when a reconciliation finds an empty inventory.
const NoWinesMessage = "No wines found in inventory"

// BatchAutoTagResult summarizes one reconciliation run.
type BatchAutoTagResult struct {
	Success   bool     `json:"success"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// FetchFailed reports whether the run aborted before any wine was looked at.
func (r *BatchAutoTagResult) FetchFailed() bool {
	return !r.Success && r.Processed == 0 && r.Failed == 0
}

// AutoTagPreviewEntry describes the proposed change for one wine.
type AutoTagPreviewEntry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CurrentTags   []string `json:"currentTags"`
	SuggestedTags []string `json:"suggestedTags"`
	Changed       bool     `json:"changed"`
}

// AutoTagPreview is the result of a dry run.
type AutoTagPreview struct {
	Success  bool                  `json:"success"`
	Previews []AutoTagPreviewEntry `json:"previews"`
	Error    string                `json:"error,omitempty"`
}

// AutoTagOptions tunes reconciliation. Concurrency below 2 processes wines
// one at a time.
type AutoTagOptions struct {
	Concurrency int
}

// AutoTagService reconciles stored wine tags with the tagging engine.
type AutoTagService struct {
	store       store.InventoryStore
	concurrency int
}

func NewAutoTagService(is store.InventoryStore, opts AutoTagOptions) *AutoTagService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &AutoTagService{store: is, concurrency: opts.Concurrency}
}

// SuggestForWine returns the sanitized tags the engine proposes for w.
func SuggestForWine(w *models.Wine) []string {
	return autotag.SanitizeTags(autotag.AutoTagWine(autotag.WineTextInput{
		Name:        w.Name,
		Type:        w.Type,
		FlavorNotes: w.FlavorNotes,
		Description: w.Description,
	}))
}

// recordOutcome is the result of reconciling a single wine.
type recordOutcome struct {
	updated bool
	err     string
}

// BatchAutoTagInventory recomputes tags for every wine and writes back only
// those whose tags differ. A failing wine is reported and never stops the run;
// only a failure to fetch the inventory aborts it.
func (s *AutoTagService) BatchAutoTagInventory(ctx context.Context) *BatchAutoTagResult {
	result := &BatchAutoTagResult{Errors: []string{}}

	wines, err := s.store.ListWines(ctx, store.WineFilter{})
	if err != nil {
		log.WithError(err).Error("Auto-tag: failed to fetch inventory")
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if len(wines) == 0 {
		result.Success = true
		result.Errors = append(result.Errors, NoWinesMessage)
		return result
	}

	outcomes := make([]recordOutcome, len(wines))
	if s.concurrency == 1 {
		for i, w := range wines {
			outcomes[i] = s.reconcileWine(ctx, w)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(s.concurrency)
		for i, w := range wines {
			g.Go(func() error {
				outcomes[i] = s.reconcileWine(ctx, w)
				return nil
			})
		}
		_ = g.Wait()
	}

	updated := 0
	for _, o := range outcomes {
		if o.err != "" {
			result.Failed++
			result.Errors = append(result.Errors, o.err)
			continue
		}
		result.Processed++
		if o.updated {
			updated++
		}
	}
	result.Success = result.Failed == 0

	log.WithFields(log.Fields{
		"wines":     len(wines),
		"processed": result.Processed,
		"updated":   updated,
		"failed":    result.Failed,
	}).Info("Auto-tag reconciliation finished")
	return result
}

// reconcileWine never panics; a panic while handling one wine becomes that
// wine's failure.
func (s *AutoTagService) reconcileWine(ctx context.Context, w *models.Wine) (out recordOutcome) {
	name := "<nil>"
	if w != nil {
		name = w.DisplayName()
	}
	defer func() {
		if r := recover(); r != nil {
			out = recordOutcome{err: fmt.Sprintf("Failed to process %s: %v", name, r)}
			log.WithField("wine_name", name).Warnf("Auto-tag: recovered panic: %v", r)
		}
	}()

	suggested := SuggestForWine(w)
	if autotag.Equal(suggested, w.Tags) {
		return recordOutcome{}
	}

	if err := s.store.UpdateWineTags(ctx, w.ID, suggested); err != nil {
		log.WithFields(log.Fields{"wine_id": w.ID, "wine_name": name}).WithError(err).Warn("Auto-tag: failed to update tags")
		return recordOutcome{err: fmt.Sprintf("Failed to update %s: %v", name, err)}
	}
	log.WithFields(log.Fields{"wine_id": w.ID, "tags": suggested}).Debug("Auto-tag: updated tags")
	return recordOutcome{updated: true}
}

// PreviewAutoTags computes the suggestion for every wine without writing.
func (s *AutoTagService) PreviewAutoTags(ctx context.Context) *AutoTagPreview {
	wines, err := s.store.ListWines(ctx, store.WineFilter{})
	if err != nil {
		log.WithError(err).Error("Auto-tag preview: failed to fetch inventory")
		return &AutoTagPreview{Previews: []AutoTagPreviewEntry{}, Error: err.Error()}
	}

	previews := make([]AutoTagPreviewEntry, 0, len(wines))
	for _, w := range wines {
		if w == nil {
			continue
		}
		current := w.Tags
		if current == nil {
			current = []string{}
		}
		suggested := SuggestForWine(w)
		previews = append(previews, AutoTagPreviewEntry{
			ID:            w.ID,
			Name:          w.Name,
			CurrentTags:   current,
			SuggestedTags: suggested,
			Changed:       !autotag.Equal(suggested, current),
		})
	}
	return &AutoTagPreview{Success: true, Previews: previews}
}
