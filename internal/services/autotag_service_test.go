package services_test

import (
	"context"
	"errors"
	"testing"

	"corkcount/internal/models"
	"corkcount/internal/services"
	"corkcount/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleWines() []*models.Wine {
	return []*models.Wine{
		{ID: "w1", Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar"},
		{ID: "w2", Name: "Hillside Chardonnay", Type: "White Wine", FlavorNotes: "buttery with toasted oak"},
		{ID: "w3", Name: "Valley Rosé", Type: "Rosé", FlavorNotes: "strawberry and rose petals"},
	}
}

func TestSuggestForWine(t *testing.T) {
	w := &models.Wine{Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar"}
	assert.Equal(t, []string{"berry", "earthy", "oak"}, services.SuggestForWine(w))
}

func TestBatchAutoTagInventory_SkipsUnchanged(t *testing.T) {
	ms := new(mockInventoryStore)
	wine := &models.Wine{ID: "w1", Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar",
		Tags: []string{"oak", "earthy", "berry"}}
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return([]*models.Wine{wine}, nil).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	ms.AssertNotCalled(t, "UpdateWineTags", mock.Anything, mock.Anything, mock.Anything)
	ms.AssertExpectations(t)
}

func TestBatchAutoTagInventory_WritesOnDiff(t *testing.T) {
	ms := new(mockInventoryStore)
	wine := &models.Wine{ID: "w1", Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar",
		Tags: []string{"berry"}}
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return([]*models.Wine{wine}, nil).Once()
	ms.On("UpdateWineTags", mock.Anything, "w1", []string{"berry", "earthy", "oak"}).Return(nil).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Processed)
	ms.AssertNumberOfCalls(t, "UpdateWineTags", 1)
	ms.AssertExpectations(t)
}

func TestBatchAutoTagInventory_NilStoredTagsAreEmpty(t *testing.T) {
	ms := new(mockInventoryStore)
	// No text and no recognised type: the suggestion is empty, like the stored tags.
	wine := &models.Wine{ID: "w1", Name: "Mystery Bottle", Type: "Unknown"}
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return([]*models.Wine{wine}, nil).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Processed)
	ms.AssertNotCalled(t, "UpdateWineTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchAutoTagInventory_IsolatesFailures(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		t.Run("concurrency", func(t *testing.T) {
			ms := new(mockInventoryStore)
			ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(sampleWines(), nil).Once()
			ms.On("UpdateWineTags", mock.Anything, "w1", mock.Anything).Return(nil).Once()
			ms.On("UpdateWineTags", mock.Anything, "w2", mock.Anything).Return(errors.New("connection reset")).Once()
			ms.On("UpdateWineTags", mock.Anything, "w3", mock.Anything).Return(nil).Once()

			svc := services.NewAutoTagService(ms, services.AutoTagOptions{Concurrency: concurrency})
			result := svc.BatchAutoTagInventory(context.Background())

			assert.False(t, result.Success)
			assert.Equal(t, 2, result.Processed)
			assert.Equal(t, 1, result.Failed)
			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "Hillside Chardonnay")
			assert.Contains(t, result.Errors[0], "connection reset")
			ms.AssertExpectations(t)
		})
	}
}

func TestBatchAutoTagInventory_ErrorsKeepInventoryOrder(t *testing.T) {
	ms := new(mockInventoryStore)
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(sampleWines(), nil).Once()
	ms.On("UpdateWineTags", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("read-only")).Times(3)

	svc := services.NewAutoTagService(ms, services.AutoTagOptions{Concurrency: 8})
	result := svc.BatchAutoTagInventory(context.Background())

	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, []string{
		"Failed to update Estate Cabernet: read-only",
		"Failed to update Hillside Chardonnay: read-only",
		"Failed to update Valley Rosé: read-only",
	}, result.Errors)
}

func TestBatchAutoTagInventory_RecoversFromBadRecord(t *testing.T) {
	ms := new(mockInventoryStore)
	wines := []*models.Wine{
		{ID: "w1", Name: "Estate Cabernet", Type: "Red Wine"},
		nil,
		{ID: "w3", Name: "Late Harvest", Type: "Dessert Wine"},
	}
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(wines, nil).Once()
	ms.On("UpdateWineTags", mock.Anything, "w1", []string{"berry", "earthy"}).Return(nil).Once()
	ms.On("UpdateWineTags", mock.Anything, "w3", []string{"sweet", "vanilla"}).Return(nil).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to process")
	ms.AssertExpectations(t)
}

func TestBatchAutoTagInventory_EmptyInventory(t *testing.T) {
	ms := new(mockInventoryStore)
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return([]*models.Wine{}, nil).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.Equal(t, &services.BatchAutoTagResult{
		Success:   true,
		Processed: 0,
		Failed:    0,
		Errors:    []string{"No wines found in inventory"},
	}, result)
	ms.AssertNotCalled(t, "UpdateWineTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestBatchAutoTagInventory_FetchFailure(t *testing.T) {
	ms := new(mockInventoryStore)
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(nil, errors.New("failed to list wines: timeout")).Once()

	result := services.NewAutoTagService(ms, services.AutoTagOptions{}).BatchAutoTagInventory(context.Background())

	assert.Equal(t, &services.BatchAutoTagResult{
		Success:   false,
		Processed: 0,
		Failed:    0,
		Errors:    []string{"failed to list wines: timeout"},
	}, result)
	ms.AssertNotCalled(t, "UpdateWineTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewAutoTags(t *testing.T) {
	ms := new(mockInventoryStore)
	wines := []*models.Wine{
		{ID: "w1", Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar",
			Tags: []string{"oak", "berry", "earthy"}},
		{ID: "w2", Name: "Brut Reserve", Type: "Sparkling"},
	}
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(wines, nil).Once()

	preview := services.NewAutoTagService(ms, services.AutoTagOptions{}).PreviewAutoTags(context.Background())

	require.True(t, preview.Success)
	assert.Empty(t, preview.Error)
	require.Len(t, preview.Previews, 2)

	assert.Equal(t, services.AutoTagPreviewEntry{
		ID:            "w1",
		Name:          "Estate Cabernet",
		CurrentTags:   []string{"oak", "berry", "earthy"},
		SuggestedTags: []string{"berry", "earthy", "oak"},
		Changed:       false,
	}, preview.Previews[0])

	assert.Equal(t, []string{}, preview.Previews[1].CurrentTags)
	assert.Equal(t, []string{"citrus", "dry", "light"}, preview.Previews[1].SuggestedTags)
	assert.True(t, preview.Previews[1].Changed)

	ms.AssertNotCalled(t, "UpdateWineTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreviewAutoTags_FetchFailure(t *testing.T) {
	ms := new(mockInventoryStore)
	ms.On("ListWines", mock.Anything, store.WineFilter{}).Return(nil, errors.New("offline")).Once()

	preview := services.NewAutoTagService(ms, services.AutoTagOptions{}).PreviewAutoTags(context.Background())

	assert.False(t, preview.Success)
	assert.Equal(t, "offline", preview.Error)
	assert.Empty(t, preview.Previews)
}
