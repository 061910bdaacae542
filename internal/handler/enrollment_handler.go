package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noor-edu/portal-api/internal/service"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
	"github.com/noor-edu/portal-api/pkg/response"
)

// EnrollmentHandler handles student and teacher creation endpoints.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// CreateStudent godoc
// @Summary Enroll student
// @Description Create a student account with its profile and grade/section enrollment
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *EnrollmentHandler) CreateStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload"))
		return
	}

	result, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// CreateTeacher godoc
// @Summary Create teacher
// @Description Create a teacher account with subject and class assignments; assignment failures are reported, not fatal
// @Tags Enrollment
// @Accept json
// @Produce json
// @Param payload body service.CreateTeacherRequest true "Teacher"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers [post]
func (h *EnrollmentHandler) CreateTeacher(c *gin.Context) {
	var req service.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload"))
		return
	}

	result, err := h.service.CreateTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
