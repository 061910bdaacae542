package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noor-edu/portal-api/internal/store"
)

func TestListGrades(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionGrades, "g3", map[string]interface{}{
		"code": "G3", "name": map[string]interface{}{"en": "Grade 3", "ar": "الصف الثالث"},
		"display_order": 3, "is_active": true,
	})
	fs.seed(store.CollectionGrades, "g1", map[string]interface{}{
		"code": "G1", "name": "Grade 1", "display_order": 1, "is_active": true,
	})
	fs.seed(store.CollectionGrades, "g2", map[string]interface{}{
		"code": "G2", "name": "Grade 2", "display_order": 2, "is_active": false,
	})
	svc := NewCatalogService(fs, nil)

	grades, err := svc.ListGrades(context.Background())

	require.NoError(t, err)
	require.Len(t, grades, 2, "inactive grades are excluded")
	assert.Equal(t, "g1", grades[0].ID)
	assert.Equal(t, "g3", grades[1].ID)
	assert.Equal(t, "Grade 1", grades[0].Name.En)
	assert.Equal(t, "Grade 3", grades[1].Name.En)
	assert.Equal(t, "الصف الثالث", grades[1].Name.Ar)
}

func TestListSections(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionSections, "s-b", map[string]interface{}{
		"name": "B", "grade_id": "g1", "max_students": 30, "is_active": true,
	})
	fs.seed(store.CollectionSections, "s-a", map[string]interface{}{
		"name": "A", "grade_id": "g1", "max_students": 30, "is_active": true,
	})
	fs.seed(store.CollectionSections, "s-c", map[string]interface{}{
		"name": "C", "grade_id": "g2", "max_students": 30, "is_active": true,
	})
	fs.seed(store.CollectionSections, "s-d", map[string]interface{}{
		"name": "D", "grade_id": "g1", "max_students": 30, "is_active": false,
	})
	svc := NewCatalogService(fs, nil)

	all, err := svc.ListSections(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
	assert.Equal(t, "C", all[2].Name)

	narrowed, err := svc.ListSections(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, narrowed, 2)
	for _, section := range narrowed {
		assert.Equal(t, "g1", section.GradeID)
	}
}

func TestListSubjects(t *testing.T) {
	fs := newFakeStore()
	fs.seed(store.CollectionSubjects, "sub-math", map[string]interface{}{
		"code": "MATH", "name": map[string]interface{}{"en": "Mathematics", "ar": "الرياضيات"}, "is_active": true,
	})
	fs.seed(store.CollectionSubjects, "sub-arab", map[string]interface{}{
		"code": "ARAB", "name": "Arabic", "is_active": true,
	})
	fs.seed(store.CollectionSubjects, "sub-old", map[string]interface{}{
		"code": "OLD", "name": "Retired", "is_active": false,
	})
	svc := NewCatalogService(fs, nil)

	subjects, err := svc.ListSubjects(context.Background())

	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "ARAB", subjects[0].Code)
	assert.Equal(t, "MATH", subjects[1].Code)
	assert.Equal(t, "الرياضيات", subjects[1].Name.Ar)
}
