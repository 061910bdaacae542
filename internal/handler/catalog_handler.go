package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/service"
	"github.com/noor-edu/portal-api/pkg/response"
)

// CatalogHandler serves reference data for selection UIs. Responses are
// cached through the cache service when enabled; the underlying service
// reads stay uncached.
type CatalogHandler struct {
	service *service.CatalogService
	cache   *service.CacheService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(svc *service.CatalogService, cache *service.CacheService) *CatalogHandler {
	return &CatalogHandler{service: svc, cache: cache}
}

// ListGrades godoc
// @Summary List grades
// @Description List active grades ordered by display order
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/grades [get]
func (h *CatalogHandler) ListGrades(c *gin.Context) {
	var cached []models.Grade
	if hit, _ := h.cache.Get(c.Request.Context(), "catalog:grades", &cached); hit {
		response.JSON(c, http.StatusOK, cached, nil, map[string]interface{}{"cache_hit": true})
		return
	}

	grades, err := h.service.ListGrades(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Set(c.Request.Context(), "catalog:grades", grades, 0)
	response.JSON(c, http.StatusOK, grades, nil)
}

// ListSections godoc
// @Summary List sections
// @Description List active sections, optionally narrowed to one grade
// @Tags Catalog
// @Produce json
// @Param grade_id query string false "Grade filter"
// @Success 200 {object} response.Envelope
// @Router /catalog/sections [get]
func (h *CatalogHandler) ListSections(c *gin.Context) {
	gradeID := c.Query("grade_id")

	cacheKey := "catalog:sections:" + gradeID
	var cached []models.Section
	if hit, _ := h.cache.Get(c.Request.Context(), cacheKey, &cached); hit {
		response.JSON(c, http.StatusOK, cached, nil, map[string]interface{}{"cache_hit": true})
		return
	}

	sections, err := h.service.ListSections(c.Request.Context(), gradeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Set(c.Request.Context(), cacheKey, sections, 0)
	response.JSON(c, http.StatusOK, sections, nil)
}

// ListSubjects godoc
// @Summary List subjects
// @Description List active subjects ordered by code
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	var cached []models.Subject
	if hit, _ := h.cache.Get(c.Request.Context(), "catalog:subjects", &cached); hit {
		response.JSON(c, http.StatusOK, cached, nil, map[string]interface{}{"cache_hit": true})
		return
	}

	subjects, err := h.service.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Set(c.Request.Context(), "catalog:subjects", subjects, 0)
	response.JSON(c, http.StatusOK, subjects, nil)
}
