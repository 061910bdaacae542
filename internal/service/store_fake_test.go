package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/store"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

// fakeStore is an in-memory store.Client. It understands the equality
// subset of the filter syntax the services emit and enforces email
// uniqueness on the users collection.
type fakeStore struct {
	collections map[string]map[string]store.Record
	seq         int

	createHook func(collection string, fields map[string]interface{}) error
	updateHook func(collection, id string) error
	deleteHook func(collection, id string) error

	creates int
	updates int
	deletes int
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: map[string]map[string]store.Record{}}
}

func (f *fakeStore) seed(collection, id string, fields map[string]interface{}) {
	if f.collections[collection] == nil {
		f.collections[collection] = map[string]store.Record{}
	}
	rec := store.Record{"id": id}
	for k, v := range fields {
		rec[k] = v
	}
	f.collections[collection][id] = rec
}

func (f *fakeStore) count(collection string) int {
	return len(f.collections[collection])
}

func (f *fakeStore) List(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	var out []store.Record
	for _, rec := range f.collections[collection] {
		if matchFilter(rec, q.Filter) {
			out = append(out, copyRecord(rec))
		}
	}
	sortRecords(out, q.Sort)
	return out, nil
}

func (f *fakeStore) Get(ctx context.Context, collection, id string) (store.Record, error) {
	if rec, ok := f.collections[collection][id]; ok {
		return copyRecord(rec), nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, collection+" record not found")
}

func (f *fakeStore) Create(ctx context.Context, collection string, fields map[string]interface{}) (store.Record, error) {
	if f.createHook != nil {
		if err := f.createHook(collection, fields); err != nil {
			return nil, err
		}
	}
	if collection == store.CollectionUsers {
		email, _ := fields["email"].(string)
		for _, rec := range f.collections[collection] {
			if rec.String("email") == email {
				return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
			}
		}
	}

	f.seq++
	id := fmt.Sprintf("%s-%d", collection, f.seq)
	f.seed(collection, id, fields)
	f.creates++
	return copyRecord(f.collections[collection][id]), nil
}

func (f *fakeStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) (store.Record, error) {
	if f.updateHook != nil {
		if err := f.updateHook(collection, id); err != nil {
			return nil, err
		}
	}
	rec, ok := f.collections[collection][id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, collection+" record not found")
	}
	for k, v := range fields {
		rec[k] = v
	}
	f.updates++
	return copyRecord(rec), nil
}

func (f *fakeStore) Delete(ctx context.Context, collection, id string) error {
	if f.deleteHook != nil {
		if err := f.deleteHook(collection, id); err != nil {
			return err
		}
	}
	if _, ok := f.collections[collection][id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, collection+" record not found")
	}
	delete(f.collections[collection], id)
	f.deletes++
	return nil
}

func copyRecord(rec store.Record) store.Record {
	cp := make(store.Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	return cp
}

// matchFilter evaluates the equality subset of the store filter syntax:
// clauses joined by && comparing a field to a quoted string or a boolean.
func matchFilter(rec store.Record, filter string) bool {
	if filter == "" {
		return true
	}
	for _, clause := range strings.Split(filter, " && ") {
		parts := strings.SplitN(clause, " = ", 2)
		if len(parts) != 2 {
			return false
		}
		field := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "'") {
			if rec.String(field) != strings.Trim(value, "'") {
				return false
			}
			continue
		}
		want, err := strconv.ParseBool(value)
		if err != nil || rec.Bool(field) != want {
			return false
		}
	}
	return true
}

func sortRecords(records []store.Record, sortKey string) {
	if sortKey == "" {
		return
	}
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")
	sort.SliceStable(records, func(i, j int) bool {
		less := lessValue(records[i][field], records[j][field])
		if desc {
			return !less
		}
		return less
	})
}

func lessValue(a, b interface{}) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af < bf
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// fakeAudit collects audit entries written by services under test.
type fakeAudit struct {
	entries []*models.AuditLog
	err     error
}

func (f *fakeAudit) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeAudit) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}
