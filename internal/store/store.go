// Package store implements the thin client for the hosted record store that
// backs the portal. Every collection is a flat bag of JSON records; all
// relational integrity the portal relies on is enforced by the callers in
// internal/service, not by the store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection names as they exist in the hosted store. Grades live in the
// legacy "classes" collection and subjects in "courses".
const (
	CollectionUsers           = "users"
	CollectionProfiles        = "user_profiles"
	CollectionGrades          = "classes"
	CollectionSections        = "class_sections"
	CollectionSubjects        = "courses"
	CollectionTeacherSubjects = "teacher_subjects"
	CollectionTeacherClasses  = "teacher_classes"
	CollectionActivities      = "activities"
	CollectionSubmissions     = "submissions"
	CollectionNews            = "news"
	CollectionLessons         = "lessons"
)

// Record is a raw store row. Field access goes through Decode or the typed
// getters; callers never branch on wire shapes directly.
type Record map[string]interface{}

// ID returns the record identifier.
func (r Record) ID() string {
	return r.String("id")
}

// String returns the named field as a string, or "" when absent.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the named field as a bool, or false when absent.
func (r Record) Bool(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

// Int returns the named field as an int. JSON numbers decode as float64.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Decode unmarshals the record into a typed struct via its JSON tags.
func (r Record) Decode(dest interface{}) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// Query narrows a List call. Filter uses the store's predicate syntax (see
// the filter helpers), Sort is a comma-separated field list with a leading
// '-' for descending order.
type Query struct {
	Filter  string
	Sort    string
	Expand  string
	PerPage int
}

// Client is the record-store operation set. Services depend on this
// interface so tests can substitute an in-memory fake.
type Client interface {
	List(ctx context.Context, collection string, q Query) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Create(ctx context.Context, collection string, fields map[string]interface{}) (Record, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) (Record, error)
	Delete(ctx context.Context, collection, id string) error
}
