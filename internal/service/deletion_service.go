package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

// HardDeleteConfirmation is the literal an operator must supply before a
// hard delete is issued. Case-sensitive, no trimming.
const HardDeleteConfirmation = "DELETE"

// dependencyKinds enumerates the relations counted against a user before
// deletion. The field is the store column referencing the user.
var dependencyKinds = []struct {
	kind       string
	collection string
	field      string
}{
	{"profile", store.CollectionProfiles, "user_id"},
	{"submissions", store.CollectionSubmissions, "student_id"},
	{"teacher_subjects", store.CollectionTeacherSubjects, "teacher_id"},
	{"classes", store.CollectionTeacherClasses, "teacher_id"},
	{"activities", store.CollectionActivities, "created_by"},
}

// ReassignClassesRequest is the payload for moving class assignments to a
// replacement teacher.
type ReassignClassesRequest struct {
	NewTeacherID string   `json:"new_teacher_id" validate:"required"`
	ClassIDs     []string `json:"class_ids" validate:"required,min=1"`
}

// DeletionService owns the two-tier user removal: soft delete flips the
// active flag and keeps every dependent row; hard delete removes the user
// and its dependents, or fails without touching the user row. Class
// reassignment and soft delete stay two separate calls with no transactional
// coupling; a crash between them leaves classes moved and the old teacher
// still active, which the audit trail makes diagnosable.
type DeletionService struct {
	store  store.Client
	audit  auditWriter
	logger *zap.Logger
}

// NewDeletionService constructs a DeletionService.
func NewDeletionService(client store.Client, audit auditWriter, logger *zap.Logger) *DeletionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeletionService{store: client, audit: audit, logger: logger}
}

// Dependencies counts rows in every dependent relation without mutating
// anything. Kinds with zero rows are omitted.
func (s *DeletionService) Dependencies(ctx context.Context, userID string) (*models.DependencyReport, error) {
	if _, err := s.fetchUser(ctx, userID); err != nil {
		return nil, err
	}

	report := &models.DependencyReport{
		UserID:       userID,
		Dependencies: map[string]int{},
	}
	for _, dep := range dependencyKinds {
		records, err := s.store.List(ctx, dep.collection, store.Query{
			Filter: store.Eq(dep.field, userID),
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count "+dep.kind)
		}
		if len(records) > 0 {
			report.Dependencies[dep.kind] = len(records)
			report.TotalImpact += len(records)
		}
	}
	return report, nil
}

// SoftDelete deactivates the user, preserving every dependent row.
// Idempotent: deactivating an already-inactive user succeeds with no writes.
func (s *DeletionService) SoftDelete(ctx context.Context, userID string) error {
	user, err := s.fetchUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Active {
		return nil
	}

	_, err = s.store.Update(ctx, store.CollectionUsers, userID, map[string]interface{}{
		"active":     false,
		"deleted_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, models.AuditActionUserDeactivate, userID, map[string]interface{}{"active": false})
	return nil
}

// Reactivate moves a soft-deleted user back to active.
func (s *DeletionService) Reactivate(ctx context.Context, userID string) error {
	user, err := s.fetchUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Active {
		return nil
	}

	_, err = s.store.Update(ctx, store.CollectionUsers, userID, map[string]interface{}{
		"active":     true,
		"deleted_at": "",
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, models.AuditActionUserReactivate, userID, map[string]interface{}{"active": true})
	return nil
}

// ConfirmHardDelete validates the operator confirmation literal. Exposed
// separately so callers can gate their UI on the exact same check.
func ConfirmHardDelete(confirmation string) error {
	if confirmation != HardDeleteConfirmation {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("hard delete requires confirmation %q", HardDeleteConfirmation))
	}
	return nil
}

// HardDelete irreversibly removes the user and all dependent rows. Dependents
// are removed first; if any of those deletes fail the user row is left in
// place so the operation fails without half-removing the account.
func (s *DeletionService) HardDelete(ctx context.Context, userID, confirmation string) error {
	if err := ConfirmHardDelete(confirmation); err != nil {
		return err
	}

	user, err := s.fetchUser(ctx, userID)
	if err != nil {
		return err
	}

	for _, dep := range dependencyKinds {
		records, err := s.store.List(ctx, dep.collection, store.Query{
			Filter: store.Eq(dep.field, userID),
		})
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrDependencyWrite.Code, appErrors.ErrDependencyWrite.Status, "failed to list "+dep.kind+" for removal")
		}
		for _, rec := range records {
			if err := s.store.Delete(ctx, dep.collection, rec.ID()); err != nil {
				return appErrors.Wrap(err, appErrors.ErrDependencyWrite.Code, appErrors.ErrDependencyWrite.Status, "failed to remove dependent "+dep.kind)
			}
		}
	}

	if err := s.store.Delete(ctx, store.CollectionUsers, userID); err != nil {
		return err
	}

	s.recordAudit(ctx, models.AuditActionUserPurge, userID, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})
	return nil
}

// ReassignClasses rewrites the teacher reference on the named class rows
// from old to new, best-effort per row. Intended to run before SoftDelete
// when an operator preserves class continuity.
func (s *DeletionService) ReassignClasses(ctx context.Context, oldTeacherID, newTeacherID string, classIDs []string) (*models.ReassignmentResult, error) {
	if len(classIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no classes to reassign")
	}
	if oldTeacherID == newTeacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "old and new teacher are the same user")
	}

	replacement, err := s.fetchUser(ctx, newTeacherID)
	if err != nil {
		return nil, err
	}
	if replacement.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "replacement user is not a teacher")
	}
	if !replacement.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "replacement teacher is inactive")
	}

	result := &models.ReassignmentResult{
		OldTeacherID: oldTeacherID,
		NewTeacherID: newTeacherID,
	}
	for _, classID := range classIDs {
		if err := s.reassignClass(ctx, oldTeacherID, newTeacherID, classID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.AssignmentError{
				SectionID: classID,
				Message:   err.Error(),
			})
			continue
		}
		result.Reassigned++
	}

	s.recordAudit(ctx, models.AuditActionClassReassign, oldTeacherID, map[string]interface{}{
		"new_teacher_id": newTeacherID,
		"reassigned":     result.Reassigned,
		"failed":         result.Failed,
	})
	return result, nil
}

func (s *DeletionService) reassignClass(ctx context.Context, oldTeacherID, newTeacherID, classID string) error {
	rec, err := s.store.Get(ctx, store.CollectionTeacherClasses, classID)
	if err != nil {
		return err
	}
	if rec.String("teacher_id") != oldTeacherID {
		return appErrors.Clone(appErrors.ErrValidation, "class does not belong to the departing teacher")
	}
	_, err = s.store.Update(ctx, store.CollectionTeacherClasses, classID, map[string]interface{}{
		"teacher_id": newTeacherID,
	})
	return err
}

func (s *DeletionService) fetchUser(ctx context.Context, userID string) (*models.User, error) {
	rec, err := s.store.Get(ctx, store.CollectionUsers, userID)
	if err != nil {
		if appErrors.IsCode(err, appErrors.ErrNotFound.Code) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, err
	}
	var user models.User
	if err := rec.Decode(&user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode user")
	}
	return &user, nil
}

func (s *DeletionService) recordAudit(ctx context.Context, action, userID string, payload map[string]interface{}) {
	if s.audit == nil {
		return
	}
	raw, _ := json.Marshal(payload)
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Action:     action,
		Resource:   store.CollectionUsers,
		ResourceID: &userID,
		NewValues:  raw,
	}); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
