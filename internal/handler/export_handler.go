package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noor-edu/portal-api/internal/service"
	"github.com/noor-edu/portal-api/pkg/response"
)

// ExportHandler serves downloadable impact reports and rosters.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ImpactReport godoc
// @Summary Export deletion impact report
// @Description Render the pre-deletion dependency summary as CSV or PDF
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "User ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/impact-report [get]
func (h *ExportHandler) ImpactReport(c *gin.Context) {
	doc, err := h.service.ImpactReport(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}

// SectionRoster godoc
// @Summary Export section roster
// @Description Render one section's student roster as CSV or PDF
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Section ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Failure 404 {object} response.Envelope
// @Router /catalog/sections/{id}/roster [get]
func (h *ExportHandler) SectionRoster(c *gin.Context) {
	doc, err := h.service.SectionRoster(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
