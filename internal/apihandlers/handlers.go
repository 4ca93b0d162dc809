package apihandlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"corkcount/internal/app"
	"corkcount/internal/clix"
	"corkcount/internal/models"
	"corkcount/internal/services"
	"corkcount/internal/store"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// RegisterRoutes mounts the health check and the /api/v1 routes on router.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.HealthHandler)

	v1 := router.Group("/api/v1")
	{
		inventory := v1.Group("/inventory")
		{
			inventory.GET("", h.ListWinesHandler)
			inventory.POST("", h.CreateWineHandler)
			inventory.GET("/:id", h.GetWineHandler)
			inventory.PUT("/:id/tags", h.SetTagsHandler)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("/suggested", h.SuggestedTagsHandler)
			tags.POST("/extract", h.ExtractTagsHandler)
			tags.GET("/usage", h.TagUsageHandler)
		}

		autotag := v1.Group("/autotag")
		{
			autotag.GET("/preview", h.PreviewAutoTagHandler)
			autotag.POST("/run", h.RunAutoTagHandler)
			autotag.POST("/jobs", h.EnqueueAutoTagHandler)
			autotag.GET("/jobs", h.ListJobsHandler)
		}
	}
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.Store.Ping(c.Request.Context()); err != nil {
		Unavailable(c, "database unreachable: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) ListWinesHandler(c *gin.Context) {
	params, err := parseListWinesParams(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	wines, err := h.App.InventoryService.ListWines(c.Request.Context(), params)
	if err != nil {
		Internal(c, fmt.Sprintf("ListWinesHandler: failed to list wines: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wines})
}

// parseListWinesParams parses limit, offset, type and comma separated tags.
func parseListWinesParams(c *gin.Context) (services.ListWinesParams, error) {
	params := services.ListWinesParams{Limit: 50, Type: c.Query("type")}

	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			return params, fmt.Errorf("invalid limit: %s", l)
		}
		params.Limit = parsed
	}
	if o := c.Query("offset"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil || parsed < 0 {
			return params, fmt.Errorf("invalid offset: %s", o)
		}
		params.Offset = parsed
	}
	params.FilterTags = clix.SplitTags(c.Query("tags"))
	return params, nil
}

func (h *APIHandler) GetWineHandler(c *gin.Context) {
	id := c.Param("id")
	wine, err := h.App.InventoryService.GetWine(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("Wine not found with ID: %s", id))
			return
		}
		Internal(c, fmt.Sprintf("GetWineHandler: failed to retrieve wine: %v", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": wine})
}

func (h *APIHandler) CreateWineHandler(c *gin.Context) {
	var req services.CreateWineParams
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	wine, err := h.App.InventoryService.CreateWine(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"data": wine})
	case errors.Is(err, models.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, store.ErrDuplicate):
		Conflict(c, err.Error())
	default:
		Internal(c, fmt.Sprintf("CreateWineHandler: failed to create wine: %v", err))
	}
}

// SetTagsRequest is the body of PUT /inventory/:id/tags. An empty list clears
// the tags.
type SetTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

func (h *APIHandler) SetTagsHandler(c *gin.Context) {
	id := c.Param("id")
	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tags, err := h.App.InventoryService.SetTags(c.Request.Context(), id, req.Tags)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, fmt.Sprintf("Wine not found with ID: %s", id))
			return
		}
		Internal(c, fmt.Sprintf("SetTagsHandler: failed to update tags: %v", err))
		return
	}
	log.WithFields(log.Fields{"wine_id": id, "tags": tags}).Info("API: tags replaced")
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id, "tags": tags}})
}
