package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/admin-console/internal/client"
	"github.com/hospitalms/admin-console/internal/model"
	apperrors "github.com/hospitalms/admin-console/pkg/errors"
	"github.com/hospitalms/admin-console/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:  logger.FatalLevel,
		Output: io.Discard,
	})
}

func newBackend(t *testing.T, baseURL string) *client.Backend {
	t.Helper()
	return client.NewBackend(client.BackendConfig{
		BaseURL:  baseURL,
		Timeout:  2 * time.Second,
		CacheTTL: time.Minute,
		RPS:      1000,
		Burst:    1000,
	}, quietLogger(), nil)
}

func TestListDecodesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/outpatients", r.URL.Path)
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode([]model.Outpatient{
			{OutpatientID: "OP-1", Name: "John", Status: model.StatusActive},
		})
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	records, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "OP-1", records[0].OutpatientID)

	_, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "second list should come from the cache")
}

func TestCreatePostsJSONAndInvalidatesCache(t *testing.T) {
	var listHits int32
	var created model.Outpatient
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&listHits, 1)
			json.NewEncoder(w).Encode([]model.Outpatient{})
		case http.MethodPost:
			require.Equal(t, "/api/outpatients", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(created)
		}
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	_, err := c.List(context.Background())
	require.NoError(t, err)

	draft := model.Outpatient{OutpatientID: "OP-2", Name: "Jane", Status: model.StatusActive}
	got, err := c.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "OP-2", got.OutpatientID)
	assert.Equal(t, "Jane", created.Name)

	_, err = c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listHits), "a mutation must invalidate the list cache")
}

func TestUpdateUsesRecordPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/outpatients/OP-1", r.URL.Path)
		var rec model.Outpatient
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		json.NewEncoder(w).Encode(rec)
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	updated, err := c.Update(context.Background(), "OP-1",
		model.Outpatient{OutpatientID: "OP-1", Name: "John", Status: model.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, updated.Status)
}

func TestUpdateUnsupportedWithoutBackendRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should reach the backend")
	}))
	defer srv.Close()

	c := client.NewREST[model.Appointment](newBackend(t, srv.URL), "appointments", client.AppointmentPaths)

	_, err := c.Update(context.Background(), "1", model.Appointment{ID: "1"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnsupported, apperrors.CodeOf(err))
}

func TestDeleteHitsRecordPath(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	require.NoError(t, c.Delete(context.Background(), "OP-1"))
	assert.Equal(t, "/api/outpatients/OP-1", deleted)
}

func TestDoctorRoutesDifferFromTheRest(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]model.Doctor{})
		case http.MethodPost:
			json.NewEncoder(w).Encode(model.Doctor{DoctorID: "D-1"})
		}
	}))
	defer srv.Close()

	c := client.NewREST[model.Doctor](newBackend(t, srv.URL), "doctors", client.DoctorPaths)

	_, err := c.List(context.Background())
	require.NoError(t, err)
	_, err = c.Create(context.Background(), model.Doctor{DoctorID: "D-1", Name: "Dr. Who"})
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /api/doctors/all", "POST /api/doctors/add"}, paths)
}

func TestNon2xxIsATransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTransport, apperrors.CodeOf(err))
}

func TestUnreachableBackendIsATransportError(t *testing.T) {
	c := client.NewREST[model.Outpatient](
		newBackend(t, "http://127.0.0.1:1"), "outpatients", client.OutpatientPaths)

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTransport, apperrors.CodeOf(err))
}

func TestListNullBodyYieldsEmptyCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := client.NewREST[model.Outpatient](newBackend(t, srv.URL), "outpatients", client.OutpatientPaths)

	records, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
