package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

func TestListUsers(t *testing.T) {
	fs := newFakeStore()
	for i := 1; i <= 5; i++ {
		fs.seed(store.CollectionUsers, fmt.Sprintf("u%d", i), map[string]interface{}{
			"email":      fmt.Sprintf("u%d@example.com", i),
			"full_name":  fmt.Sprintf("User %d", i),
			"role":       string(models.RoleStudent),
			"active":     true,
			"created_at": fmt.Sprintf("2026-01-0%dT00:00:00Z", i),
		})
	}
	svc := NewUserService(fs, nil)

	users, pagination, err := svc.List(context.Background(), models.UserFilter{Page: 1, PageSize: 2})

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u5", users[0].ID, "newest first")
	assert.Equal(t, "u4", users[1].ID)
	assert.Equal(t, 5, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 2, pagination.PageSize)

	lastPage, _, err := svc.List(context.Background(), models.UserFilter{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, lastPage, 1)
	assert.Equal(t, "u1", lastPage[0].ID)
}

func TestListUsersFiltered(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionUsers, "t1", map[string]interface{}{
		"email": "t1@example.com", "role": string(models.RoleTeacher), "active": true,
	})
	fs.seed(store.CollectionUsers, "t2", map[string]interface{}{
		"email": "t2@example.com", "role": string(models.RoleTeacher), "active": false,
	})
	fs.seed(store.CollectionUsers, "s1", map[string]interface{}{
		"email": "s1@example.com", "role": string(models.RoleStudent), "active": true,
	})
	svc := NewUserService(fs, nil)

	role := models.RoleTeacher
	active := true
	users, pagination, err := svc.List(context.Background(), models.UserFilter{Role: &role, Active: &active})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "t1", users[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestGetUserWithProfile(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionUsers, "s1", map[string]interface{}{
		"email": "s1@example.com", "full_name": "Sara Ahmed",
		"role": string(models.RoleStudent), "active": true,
	})
	fs.seed(store.CollectionProfiles, "p1", map[string]interface{}{
		"user_id": "s1", "first_name": "Sara", "last_name": "Ahmed",
		"grade_id": "g1", "section_id": "s-a",
	})
	svc := NewUserService(fs, nil)

	user, profile, err := svc.Get(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "s1", user.ID)
	require.NotNil(t, profile)
	assert.Equal(t, "Sara", profile.FirstName)
	assert.Equal(t, "g1", profile.GradeID)
}

func TestGetUserWithoutProfile(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionUsers, "u1", map[string]interface{}{
		"email": "u1@example.com", "role": string(models.RoleAdmin), "active": true,
	})
	svc := NewUserService(fs, nil)

	user, profile, err := svc.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Nil(t, profile)
}

func TestGetUserNotFound(t *testing.T) {
	fs := newFakeStore()
	svc := NewUserService(fs, nil)

	_, _, err := svc.Get(context.Background(), "nobody")

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrNotFound.Code))
}
