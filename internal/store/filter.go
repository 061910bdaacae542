package store

import (
	"fmt"
	"strings"
)

// Eq builds an equality predicate for the store's filter syntax.
func Eq(field, value string) string {
	return fmt.Sprintf("%s = '%s'", field, escape(value))
}

// EqBool builds an equality predicate on a boolean field.
func EqBool(field string, value bool) string {
	return fmt.Sprintf("%s = %t", field, value)
}

// Contains builds a substring / relation-membership predicate.
func Contains(field, value string) string {
	return fmt.Sprintf("%s ~ '%s'", field, escape(value))
}

// And joins predicates, dropping empty ones.
func And(predicates ...string) string {
	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " && ")
}

// Or joins predicates with a disjunction, parenthesised for composition.
func Or(predicates ...string) string {
	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " || ") + ")"
}

func escape(value string) string {
	return strings.ReplaceAll(value, "'", "\\'")
}
