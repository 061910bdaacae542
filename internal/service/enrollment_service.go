package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CreateStudentRequest is the payload for student enrollment.
type CreateStudentRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	FirstNameAr string `json:"first_name_ar" validate:"required"`
	LastNameAr  string `json:"last_name_ar" validate:"required"`
	GradeID     string `json:"grade_id" validate:"required"`
	SectionID   string `json:"section_id" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"omitempty,max=30"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// GradeAssignment names the sections of one grade a teacher will teach.
type GradeAssignment struct {
	GradeID    string   `json:"grade_id" validate:"required"`
	SectionIDs []string `json:"section_ids" validate:"required,min=1,dive,required"`
}

// SubjectAssignment groups the grade/section tuples requested for a subject.
type SubjectAssignment struct {
	SubjectID string            `json:"subject_id" validate:"required"`
	Grades    []GradeAssignment `json:"grades" validate:"required,min=1,dive"`
}

// CreateTeacherRequest is the payload for teacher creation with assignments.
type CreateTeacherRequest struct {
	Email              string              `json:"email" validate:"required,email"`
	Password           string              `json:"password" validate:"required,min=6"`
	FirstName          string              `json:"first_name" validate:"required"`
	LastName           string              `json:"last_name" validate:"required"`
	FirstNameAr        string              `json:"first_name_ar" validate:"required"`
	LastNameAr         string              `json:"last_name_ar" validate:"required"`
	SubjectAssignments []SubjectAssignment `json:"subject_assignments" validate:"required,min=1,dive"`
}

// EnrollmentService owns the multi-step creation writes. Student creation is
// atomic from the caller's perspective (compensated on partial failure);
// teacher assignment is best-effort per tuple. The two paths deliberately
// keep different failure contracts.
type EnrollmentService struct {
	store     store.Client
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(client store.Client, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{store: client, audit: audit, validator: validate, logger: logger}
}

// CreateStudent creates a user plus profile for a student. The section must
// belong to the requested grade; nothing is written until that holds. If the
// profile write fails the freshly created user is deleted again, and when
// even that fails the orphan is logged and audited so it stays detectable.
func (s *EnrollmentService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.StudentEnrollmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	section, err := s.fetchSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	if section.GradeID != req.GradeID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "section does not belong to grade")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	userRec, err := s.store.Create(ctx, store.CollectionUsers, map[string]interface{}{
		"email":         strings.ToLower(strings.TrimSpace(req.Email)),
		"password_hash": string(passwordHash),
		"full_name":     req.FirstName + " " + req.LastName,
		"role":          string(models.RoleStudent),
		"active":        true,
	})
	if err != nil {
		return nil, err
	}
	userID := userRec.ID()

	comp := &compensation{}
	comp.push("delete user "+userID, func(ctx context.Context) error {
		return s.store.Delete(ctx, store.CollectionUsers, userID)
	})

	_, err = s.store.Create(ctx, store.CollectionProfiles, map[string]interface{}{
		"user_id":         userID,
		"first_name":      req.FirstName,
		"last_name":       req.LastName,
		"first_name_ar":   req.FirstNameAr,
		"last_name_ar":    req.LastNameAr,
		"grade_id":        req.GradeID,
		"section_id":      req.SectionID,
		"parent_phone":    req.ParentPhone,
		"date_of_birth":   req.DateOfBirth,
		"enrollment_date": time.Now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		if failures := comp.rollback(ctx, s.logger); len(failures) > 0 {
			s.logger.Error("student left without profile after failed compensation",
				zap.String("user_id", userID),
				zap.String("email", req.Email),
			)
			s.recordAudit(ctx, models.AuditActionOrphanedUser, store.CollectionUsers, userID, map[string]interface{}{
				"email":  req.Email,
				"reason": "profile creation failed and compensating delete failed",
			})
		}
		return nil, appErrors.Wrap(err, appErrors.ErrDependencyWrite.Code, appErrors.ErrDependencyWrite.Status, "student profile creation failed")
	}

	s.recordAudit(ctx, models.AuditActionStudentCreate, store.CollectionUsers, userID, map[string]interface{}{
		"email":      req.Email,
		"grade_id":   req.GradeID,
		"section_id": req.SectionID,
	})

	return &models.StudentEnrollmentResult{
		Success:   true,
		ID:        userID,
		Email:     userRec.String("email"),
		Role:      models.RoleStudent,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		GradeID:   req.GradeID,
		SectionID: req.SectionID,
	}, nil
}

// CreateTeacher creates a user plus profile for a teacher and then walks the
// requested subject/grade/section assignments best-effort: one subject's
// failure skips only that subject's tuples, and every tuple lands in either
// AssignmentsCreated or AssignmentsFailed.
func (s *EnrollmentService) CreateTeacher(ctx context.Context, req CreateTeacherRequest) (*models.TeacherCreationResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	userRec, err := s.store.Create(ctx, store.CollectionUsers, map[string]interface{}{
		"email":         strings.ToLower(strings.TrimSpace(req.Email)),
		"password_hash": string(passwordHash),
		"full_name":     req.FirstName + " " + req.LastName,
		"role":          string(models.RoleTeacher),
		"active":        true,
	})
	if err != nil {
		return nil, err
	}
	userID := userRec.ID()

	comp := &compensation{}
	comp.push("delete user "+userID, func(ctx context.Context) error {
		return s.store.Delete(ctx, store.CollectionUsers, userID)
	})

	_, err = s.store.Create(ctx, store.CollectionProfiles, map[string]interface{}{
		"user_id":       userID,
		"first_name":    req.FirstName,
		"last_name":     req.LastName,
		"first_name_ar": req.FirstNameAr,
		"last_name_ar":  req.LastNameAr,
	})
	if err != nil {
		if failures := comp.rollback(ctx, s.logger); len(failures) > 0 {
			s.logger.Error("teacher left without profile after failed compensation",
				zap.String("user_id", userID),
				zap.String("email", req.Email),
			)
			s.recordAudit(ctx, models.AuditActionOrphanedUser, store.CollectionUsers, userID, map[string]interface{}{
				"email":  req.Email,
				"reason": "profile creation failed and compensating delete failed",
			})
		}
		return nil, appErrors.Wrap(err, appErrors.ErrDependencyWrite.Code, appErrors.ErrDependencyWrite.Status, "teacher profile creation failed")
	}

	result := &models.TeacherCreationResult{
		Success:   true,
		ID:        userID,
		Email:     userRec.String("email"),
		Role:      models.RoleTeacher,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	for _, assignment := range req.SubjectAssignments {
		s.applySubjectAssignment(ctx, userID, assignment, result)
	}

	s.recordAudit(ctx, models.AuditActionTeacherCreate, store.CollectionUsers, userID, map[string]interface{}{
		"email":               req.Email,
		"assignments_created": result.AssignmentsCreated,
		"assignments_failed":  result.AssignmentsFailed,
	})

	return result, nil
}

// applySubjectAssignment creates one subject edge and its class rows. A
// failed subject edge fails every tuple under it; tuple failures are
// independent of each other.
func (s *EnrollmentService) applySubjectAssignment(ctx context.Context, teacherID string, assignment SubjectAssignment, result *models.TeacherCreationResult) {
	failSubject := func(message string) {
		for _, grade := range assignment.Grades {
			for _, sectionID := range grade.SectionIDs {
				result.AssignmentsFailed++
				result.Errors = append(result.Errors, models.AssignmentError{
					SubjectID: assignment.SubjectID,
					GradeID:   grade.GradeID,
					SectionID: sectionID,
					Message:   message,
				})
			}
		}
	}

	if _, err := s.store.Get(ctx, store.CollectionSubjects, assignment.SubjectID); err != nil {
		failSubject(fmt.Sprintf("subject lookup failed: %v", err))
		return
	}

	if _, err := s.store.Create(ctx, store.CollectionTeacherSubjects, map[string]interface{}{
		"teacher_id": teacherID,
		"subject_id": assignment.SubjectID,
	}); err != nil {
		failSubject(fmt.Sprintf("subject assignment failed: %v", err))
		return
	}

	for _, grade := range assignment.Grades {
		for _, sectionID := range grade.SectionIDs {
			if err := s.assignClass(ctx, teacherID, assignment.SubjectID, grade.GradeID, sectionID); err != nil {
				result.AssignmentsFailed++
				result.Errors = append(result.Errors, models.AssignmentError{
					SubjectID: assignment.SubjectID,
					GradeID:   grade.GradeID,
					SectionID: sectionID,
					Message:   err.Error(),
				})
				continue
			}
			result.AssignmentsCreated++
		}
	}
}

// assignClass re-checks the section/grade pairing before writing: assignment
// payloads can carry stale client-side data.
func (s *EnrollmentService) assignClass(ctx context.Context, teacherID, subjectID, gradeID, sectionID string) error {
	section, err := s.fetchSection(ctx, sectionID)
	if err != nil {
		return err
	}
	if section.GradeID != gradeID {
		return appErrors.Clone(appErrors.ErrValidation, "section does not belong to grade")
	}

	_, err = s.store.Create(ctx, store.CollectionTeacherClasses, map[string]interface{}{
		"teacher_id": teacherID,
		"subject_id": subjectID,
		"grade_id":   gradeID,
		"section_id": sectionID,
	})
	return err
}

func (s *EnrollmentService) fetchSection(ctx context.Context, sectionID string) (*models.Section, error) {
	rec, err := s.store.Get(ctx, store.CollectionSections, sectionID)
	if err != nil {
		if appErrors.IsCode(err, appErrors.ErrNotFound.Code) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "section not found")
		}
		return nil, err
	}
	var section models.Section
	if err := rec.Decode(&section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode section")
	}
	return &section, nil
}

func (s *EnrollmentService) recordAudit(ctx context.Context, action, resource, resourceID string, payload map[string]interface{}) {
	if s.audit == nil {
		return
	}
	raw, _ := json.Marshal(payload)
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: &resourceID,
		NewValues:  raw,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
