package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGetters(t *testing.T) {
	rec := Record{
		"id":       "r1",
		"email":    "a@example.com",
		"active":   true,
		"count":    float64(7),
		"max":      12,
		"untagged": nil,
	}

	assert.Equal(t, "r1", rec.ID())
	assert.Equal(t, "a@example.com", rec.String("email"))
	assert.Equal(t, "", rec.String("missing"))
	assert.True(t, rec.Bool("active"))
	assert.False(t, rec.Bool("missing"))
	assert.Equal(t, 7, rec.Int("count"))
	assert.Equal(t, 12, rec.Int("max"))
	assert.Equal(t, 0, rec.Int("missing"))
}

func TestRecordDecode(t *testing.T) {
	rec := Record{
		"id":           "s1",
		"name":         "A",
		"grade_id":     "g1",
		"max_students": float64(25),
		"is_active":    true,
	}

	var dest struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		GradeID     string `json:"grade_id"`
		MaxStudents int    `json:"max_students"`
		IsActive    bool   `json:"is_active"`
	}
	require.NoError(t, rec.Decode(&dest))
	assert.Equal(t, "s1", dest.ID)
	assert.Equal(t, "g1", dest.GradeID)
	assert.Equal(t, 25, dest.MaxStudents)
	assert.True(t, dest.IsActive)
}
