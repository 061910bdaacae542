package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
	"github.com/noor-edu/portal-api/pkg/export"
)

type dependencyReader interface {
	Dependencies(ctx context.Context, userID string) (*models.DependencyReport, error)
}

// ExportDocument is a rendered export plus its HTTP serving metadata.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders deletion impact reports and section rosters as CSV
// or PDF documents for operators.
type ExportService struct {
	deps   dependencyReader
	store  store.Client
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(deps dependencyReader, client store.Client, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		deps:   deps,
		store:  client,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ImpactReport renders the pre-deletion dependency summary for a user.
func (s *ExportService) ImpactReport(ctx context.Context, userID, format string) (*ExportDocument, error) {
	report, err := s.deps.Dependencies(ctx, userID)
	if err != nil {
		return nil, err
	}

	kinds := make([]string, 0, len(report.Dependencies))
	for kind := range report.Dependencies {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	dataset := export.Dataset{Headers: []string{"dependency", "count"}}
	for _, kind := range kinds {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"dependency": kind,
			"count":      strconv.Itoa(report.Dependencies[kind]),
		})
	}
	dataset.Rows = append(dataset.Rows, map[string]string{
		"dependency": "total_impact",
		"count":      strconv.Itoa(report.TotalImpact),
	})

	return s.render(dataset, format, "deletion impact", fmt.Sprintf("impact-%s", userID))
}

// SectionRoster renders the student roster of one section.
func (s *ExportService) SectionRoster(ctx context.Context, sectionID, format string) (*ExportDocument, error) {
	records, err := s.store.List(ctx, store.CollectionProfiles, store.Query{
		Filter: store.Eq("section_id", sectionID),
		Sort:   "last_name",
	})
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: []string{"first_name", "last_name", "first_name_ar", "last_name_ar", "parent_phone", "enrollment_date"}}
	for _, rec := range records {
		var profile models.Profile
		if err := rec.Decode(&profile); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode profile")
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"first_name":      profile.FirstName,
			"last_name":       profile.LastName,
			"first_name_ar":   profile.FirstNameAr,
			"last_name_ar":    profile.LastNameAr,
			"parent_phone":    profile.ParentPhone,
			"enrollment_date": profile.EnrollmentDate,
		})
	}

	return s.render(dataset, format, "section roster", fmt.Sprintf("roster-%s", sectionID))
}

func (s *ExportService) render(dataset export.Dataset, format, title, basename string) (*ExportDocument, error) {
	switch format {
	case "", "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportDocument{Content: content, ContentType: "text/csv", Filename: basename + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportDocument{Content: content, ContentType: "application/pdf", Filename: basename + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}
