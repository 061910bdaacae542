package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEq(t *testing.T) {
	assert.Equal(t, "role = 'teacher'", Eq("role", "teacher"))
	assert.Equal(t, `email = 'o\'brien@example.com'`, Eq("email", "o'brien@example.com"))
}

func TestEqBool(t *testing.T) {
	assert.Equal(t, "active = true", EqBool("active", true))
	assert.Equal(t, "is_active = false", EqBool("is_active", false))
}

func TestContains(t *testing.T) {
	assert.Equal(t, "full_name ~ 'sara'", Contains("full_name", "sara"))
}

func TestAnd(t *testing.T) {
	assert.Equal(t, "", And())
	assert.Equal(t, "a = '1'", And("a = '1'"))
	assert.Equal(t, "a = '1' && b = '2'", And("a = '1'", "b = '2'"))
	assert.Equal(t, "a = '1' && b = '2'", And("a = '1'", "", "b = '2'"), "empty predicates are dropped")
}

func TestOr(t *testing.T) {
	assert.Equal(t, "", Or())
	assert.Equal(t, "a = '1'", Or("a = '1'"))
	assert.Equal(t, "(a = '1' || b = '2')", Or("a = '1'", "b = '2'"))
}
