package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"corkcount/internal/services"
	"corkcount/pkg/autotag"

	"github.com/gin-gonic/gin"
)

// ExtractTagsRequest carries the free text of a wine to run the engine on.
type ExtractTagsRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	FlavorNotes string `json:"flavor_notes"`
	Description string `json:"description"`
}

// SuggestedTagsHandler returns the primary vocabulary and its display forms.
func (h *APIHandler) SuggestedTagsHandler(c *gin.Context) {
	tags := autotag.SuggestedTags()
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"tags":       tags,
		"display":    autotag.FormatTagsForDisplay(tags),
		"contextual": autotag.ContextualTags(),
	}})
}

// TagUsageHandler returns how many wines carry each stored tag.
func (h *APIHandler) TagUsageHandler(c *gin.Context) {
	counts, err := h.App.InventoryService.TagUsage(c.Request.Context())
	if err != nil {
		Internal(c, fmt.Sprintf("TagUsageHandler: failed to count tags: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counts})
}

func (h *APIHandler) ExtractTagsHandler(c *gin.Context) {
	var req ExtractTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	tags := autotag.SanitizeTags(autotag.AutoTagWine(autotag.WineTextInput{
		Name:        req.Name,
		Type:        req.Type,
		FlavorNotes: req.FlavorNotes,
		Description: req.Description,
	}))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"tags":    tags,
		"display": autotag.FormatTagsForDisplay(tags),
	}})
}

// PreviewAutoTagHandler reports what a reconciliation would change. A fetch
// failure is still a 200 with success=false, matching the preview report.
func (h *APIHandler) PreviewAutoTagHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.App.AutoTagService.PreviewAutoTags(c.Request.Context())})
}

// RunAutoTagHandler reconciles the whole inventory synchronously.
func (h *APIHandler) RunAutoTagHandler(c *gin.Context) {
	res := h.App.AutoTagService.BatchAutoTagInventory(c.Request.Context())
	status := http.StatusOK
	if res.FetchFailed() {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"data": res})
}

func (h *APIHandler) EnqueueAutoTagHandler(c *gin.Context) {
	jobID, err := h.App.JobService.EnqueueAutoTag(c.Request.Context(), "api")
	if err != nil {
		if errors.Is(err, services.ErrQueueUnavailable) {
			Unavailable(c, err.Error())
			return
		}
		Internal(c, fmt.Sprintf("EnqueueAutoTagHandler: failed to enqueue job: %v", err))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"data": gin.H{"job_id": jobID}})
}

func (h *APIHandler) ListJobsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	jobs, err := h.App.JobService.ListJobs(c.Request.Context(), limit, offset)
	if err != nil {
		Internal(c, fmt.Sprintf("ListJobsHandler: failed to list jobs: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": jobs})
}
