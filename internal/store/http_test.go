package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noor-edu/portal-api/pkg/config"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPClient(config.StoreConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestGetSendsBearerToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/collections/users/records/u1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "u1", "email": "a@example.com"})
	})

	rec, err := client.Get(context.Background(), CollectionUsers, "u1")

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "u1", rec.ID())
	assert.Equal(t, "a@example.com", rec.String("email"))
}

func TestListFollowsPages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		assert.Equal(t, "2", r.URL.Query().Get("perPage"))
		assert.Equal(t, "role = 'student'", r.URL.Query().Get("filter"))

		items := []map[string]interface{}{}
		switch page {
		case 1:
			items = append(items,
				map[string]interface{}{"id": "u1"},
				map[string]interface{}{"id": "u2"},
			)
		case 2:
			items = append(items, map[string]interface{}{"id": "u3"})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"page": page, "perPage": 2, "totalItems": 3, "items": items,
		})
	})

	records, err := client.List(context.Background(), CollectionUsers, Query{
		Filter:  Eq("role", "student"),
		PerPage: 2,
	})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "u3", records[2].ID())
}

func TestCreateMapsValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    400,
			"message": "Failed to create record.",
			"data": map[string]interface{}{
				"email": map[string]interface{}{"code": "validation_required"},
			},
		})
	})

	_, err := client.Create(context.Background(), CollectionUsers, map[string]interface{}{})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrValidation.Code))
}

func TestCreateMapsUniqueViolationToConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    400,
			"message": "Failed to create record.",
			"data": map[string]interface{}{
				"email": map[string]interface{}{"code": "validation_not_unique"},
			},
		})
	})

	_, err := client.Create(context.Background(), CollectionUsers, map[string]interface{}{"email": "dup@example.com"})

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrConflict.Code))
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, appErrors.ErrAuth.Code},
		{http.StatusForbidden, appErrors.ErrAuth.Code},
		{http.StatusNotFound, appErrors.ErrNotFound.Code},
		{http.StatusConflict, appErrors.ErrConflict.Code},
		{http.StatusInternalServerError, appErrors.ErrTransport.Code},
		{http.StatusBadGateway, appErrors.ErrTransport.Code},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": tc.status, "message": "nope"})
			})

			_, err := client.Get(context.Background(), CollectionUsers, "u1")

			require.Error(t, err)
			assert.True(t, appErrors.IsCode(err, tc.code), "expected %s for status %d, got %v", tc.code, tc.status, err)
		})
	}
}

func TestTransportErrorOnUnreachableStore(t *testing.T) {
	client := NewHTTPClient(config.StoreConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	}, nil)

	_, err := client.Get(context.Background(), CollectionUsers, "u1")

	require.Error(t, err)
	assert.True(t, appErrors.IsCode(err, appErrors.ErrTransport.Code))
}

func TestDeleteDiscardsBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Delete(context.Background(), CollectionUsers, "u1"))
}

func TestObserverReceivesSamples(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "u1"})
	})

	var mu sync.Mutex
	type sample struct {
		op, collection string
		status         int
	}
	var samples []sample
	client.WithObserver(func(op, collection string, status int, duration time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		samples = append(samples, sample{op, collection, status})
	})

	_, err := client.Get(context.Background(), CollectionUsers, "u1")

	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, samples, 1)
	assert.Equal(t, sample{"get", "users", http.StatusOK}, samples[0])
}
