package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/service"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
	"github.com/noor-edu/portal-api/pkg/response"
)

// UserHandler handles user listing, dependency inspection and the two-tier
// deletion surface.
type UserHandler struct {
	users     *service.UserService
	deletions *service.DeletionService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *service.UserService, deletions *service.DeletionService) *UserHandler {
	return &UserHandler{users: users, deletions: deletions}
}

// List godoc
// @Summary List users
// @Description List users with pagination and filtering
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param role query string false "Role filter"
// @Param active query bool false "Active filter"
// @Param search query string false "Search term"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter models.UserFilter

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		filter.PageSize = size
	}
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}
	if active := c.Query("active"); active != "" {
		if val, err := strconv.ParseBool(active); err == nil {
			filter.Active = &val
		}
	}
	filter.Search = c.Query("search")

	users, pagination, err := h.users.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Get user
// @Description Get user detail with profile
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, profile, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"user": user, "profile": profile}, nil)
}

// Dependencies godoc
// @Summary User dependency summary
// @Description Count dependent rows per relation before deletion
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/dependencies [get]
func (h *UserHandler) Dependencies(c *gin.Context) {
	report, err := h.deletions.Dependencies(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report, nil)
}

// Deactivate godoc
// @Summary Soft-delete user
// @Description Deactivate a user, preserving all dependent data
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.deletions.SoftDelete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"success": true}, nil)
}

// Reactivate godoc
// @Summary Reactivate user
// @Description Move a soft-deleted user back to active
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/reactivate [post]
func (h *UserHandler) Reactivate(c *gin.Context) {
	if err := h.deletions.Reactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"success": true}, nil)
}

type purgeRequest struct {
	Confirmation string `json:"confirmation"`
}

// Purge godoc
// @Summary Hard-delete user
// @Description Irreversibly remove a user and all dependent rows; requires the DELETE confirmation literal
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body purgeRequest true "Confirmation"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id}/purge [post]
func (h *UserHandler) Purge(c *gin.Context) {
	var req purgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid purge payload"))
		return
	}

	if err := h.deletions.HardDelete(c.Request.Context(), c.Param("id"), req.Confirmation); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete user (legacy surface)
// @Description Legacy verb-overloaded deletion; mode=soft deactivates, mode=hard purges with confirmation
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param mode query string false "soft or hard" default(soft)
// @Success 200 {object} response.Envelope
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	// Legacy clients overload DELETE with ?mode=; normalise to the two
	// explicit operations before any logic runs.
	switch c.DefaultQuery("mode", "soft") {
	case "soft":
		h.Deactivate(c)
	case "hard":
		h.Purge(c)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "mode must be soft or hard"))
	}
}

// ReassignClasses godoc
// @Summary Reassign classes
// @Description Move specific class assignments from a departing teacher to a replacement
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "Departing teacher ID"
// @Param payload body service.ReassignClassesRequest true "Reassignment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/{id}/reassign-classes [post]
func (h *UserHandler) ReassignClasses(c *gin.Context) {
	var req service.ReassignClassesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reassignment payload"))
		return
	}

	result, err := h.deletions.ReassignClasses(c.Request.Context(), c.Param("id"), req.NewTeacherID, req.ClassIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result, nil)
}
