package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

// UserService serves the admin dashboard's user listing and detail views.
// Mutations live in EnrollmentService and DeletionService.
type UserService struct {
	store  store.Client
	logger *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(client store.Client, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: client, logger: logger}
}

// List returns users matching the filter plus pagination metadata. Filtering
// is pushed down to the store; pagination happens client-side on the fetched
// page window.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	var predicates []string
	if filter.Role != nil {
		predicates = append(predicates, store.Eq("role", string(*filter.Role)))
	}
	if filter.Active != nil {
		predicates = append(predicates, store.EqBool("active", *filter.Active))
	}
	if filter.Search != "" {
		predicates = append(predicates, store.Or(
			store.Contains("email", filter.Search),
			store.Contains("full_name", filter.Search),
		))
	}

	records, err := s.store.List(ctx, store.CollectionUsers, store.Query{
		Filter: store.And(predicates...),
		Sort:   "-created_at",
	})
	if err != nil {
		return nil, nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, rec := range records {
		var user models.User
		if err := rec.Decode(&user); err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode user")
		}
		users = append(users, user)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	total := len(users)

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return users[start:end], pagination, nil
}

// Get returns one user with their profile attached when present.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, *models.Profile, error) {
	rec, err := s.store.Get(ctx, store.CollectionUsers, id)
	if err != nil {
		if appErrors.IsCode(err, appErrors.ErrNotFound.Code) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, nil, err
	}
	var user models.User
	if err := rec.Decode(&user); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode user")
	}

	profiles, err := s.store.List(ctx, store.CollectionProfiles, store.Query{
		Filter: store.Eq("user_id", id),
	})
	if err != nil {
		return nil, nil, err
	}
	if len(profiles) == 0 {
		return &user, nil, nil
	}

	var profile models.Profile
	if err := profiles[0].Decode(&profile); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode profile")
	}
	return &user, &profile, nil
}
