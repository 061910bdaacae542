package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

// CatalogService serves the read-only reference projections used to populate
// selection UIs: grades, sections and subjects. Reads always hit the store.
type CatalogService struct {
	store  store.Client
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(client store.Client, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: client, logger: logger}
}

// ListGrades returns all active grades ordered by display order.
func (s *CatalogService) ListGrades(ctx context.Context) ([]models.Grade, error) {
	records, err := s.store.List(ctx, store.CollectionGrades, store.Query{
		Filter: store.EqBool("is_active", true),
		Sort:   "display_order",
	})
	if err != nil {
		return nil, err
	}

	grades := make([]models.Grade, 0, len(records))
	for _, rec := range records {
		var grade models.Grade
		if err := rec.Decode(&grade); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode grade")
		}
		grades = append(grades, grade)
	}
	return grades, nil
}

// ListSections returns all active sections ordered by name, narrowed to one
// grade when gradeID is non-empty.
func (s *CatalogService) ListSections(ctx context.Context, gradeID string) ([]models.Section, error) {
	filter := store.EqBool("is_active", true)
	if gradeID != "" {
		filter = store.And(filter, store.Eq("grade_id", gradeID))
	}

	records, err := s.store.List(ctx, store.CollectionSections, store.Query{
		Filter: filter,
		Sort:   "name",
	})
	if err != nil {
		return nil, err
	}

	sections := make([]models.Section, 0, len(records))
	for _, rec := range records {
		var section models.Section
		if err := rec.Decode(&section); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode section")
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// ListSubjects returns all active subjects ordered by code.
func (s *CatalogService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	records, err := s.store.List(ctx, store.CollectionSubjects, store.Query{
		Filter: store.EqBool("is_active", true),
		Sort:   "code",
	})
	if err != nil {
		return nil, err
	}

	subjects := make([]models.Subject, 0, len(records))
	for _, rec := range records {
		var subject models.Subject
		if err := rec.Decode(&subject); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode subject")
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}
