package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hospitalms/admin-console/internal/resource"
	apperrors "github.com/hospitalms/admin-console/pkg/errors"
)

// Paths holds the backend routes for one resource. Update and Delete are
// format strings taking the record id; an empty path marks the operation as
// unsupported by the backend.
type Paths struct {
	List   string
	Create string
	Update string
	Delete string
}

// OutpatientPaths et al. mirror the backend's REST surface.
var (
	OutpatientPaths = Paths{
		List:   "/api/outpatients",
		Create: "/api/outpatients",
		Update: "/api/outpatients/%s",
		Delete: "/api/outpatients/%s",
	}
	PharmacistPaths = Paths{
		List:   "/api/pharmacists",
		Create: "/api/pharmacists",
		Update: "/api/pharmacists/%s",
		Delete: "/api/pharmacists/%s",
	}
	AppointmentPaths = Paths{
		List:   "/api/appointments",
		Create: "/api/appointments",
		Delete: "/api/appointments/%s",
	}
	DoctorPaths = Paths{
		List:   "/api/doctors/all",
		Create: "/api/doctors/add",
		Delete: "/api/doctors/%s",
	}
)

// REST adapts one backend resource to the engine's client interface. List
// responses are cached until the TTL elapses or a mutation invalidates.
type REST[T resource.Record] struct {
	backend *Backend
	name    string
	paths   Paths
}

// NewREST builds a REST adapter for one resource.
func NewREST[T resource.Record](backend *Backend, name string, paths Paths) *REST[T] {
	return &REST[T]{backend: backend, name: name, paths: paths}
}

func (r *REST[T]) List(ctx context.Context) ([]T, error) {
	if cached, ok := r.backend.cache.Get(r.name); ok {
		if records, ok := cached.([]T); ok {
			if r.backend.metrics != nil {
				r.backend.metrics.ListCacheHits.WithLabelValues(r.name).Inc()
			}
			out := make([]T, len(records))
			copy(out, records)
			return out, nil
		}
	}

	var records []T
	if err := r.do(ctx, "list", http.MethodGet, r.paths.List, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}

	cached := make([]T, len(records))
	copy(cached, records)
	r.backend.cache.SetDefault(r.name, cached)
	return records, nil
}

func (r *REST[T]) Create(ctx context.Context, draft T) (T, error) {
	var created T
	if err := r.do(ctx, "create", http.MethodPost, r.paths.Create, draft, &created); err != nil {
		return created, err
	}
	r.invalidate()
	return created, nil
}

func (r *REST[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	var updated T
	if r.paths.Update == "" {
		return updated, apperrors.NewUnsupported(r.name, "update")
	}
	path := fmt.Sprintf(r.paths.Update, url.PathEscape(id))
	if err := r.do(ctx, "update", http.MethodPut, path, draft, &updated); err != nil {
		return updated, err
	}
	r.invalidate()
	return updated, nil
}

func (r *REST[T]) Delete(ctx context.Context, id string) error {
	if r.paths.Delete == "" {
		return apperrors.NewUnsupported(r.name, "delete")
	}
	path := fmt.Sprintf(r.paths.Delete, url.PathEscape(id))
	if err := r.do(ctx, "delete", http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	r.invalidate()
	return nil
}

func (r *REST[T]) invalidate() {
	r.backend.cache.Delete(r.name)
}

func (r *REST[T]) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	b := r.backend
	op := r.name + " " + operation

	if err := b.limiter.Wait(ctx); err != nil {
		return apperrors.NewTransport(op, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternal(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := b.http.Do(req)
	if b.metrics != nil {
		b.metrics.BackendLatency.WithLabelValues(r.name, operation).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		r.observe(operation, "error")
		b.logger.Error(err, "backend request failed", "operation", op)
		return apperrors.NewTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.observe(operation, "error")
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		b.logger.Error(nil, "backend returned error status",
			"operation", op, "status", resp.StatusCode, "body", string(detail))
		return apperrors.NewTransport(op, fmt.Errorf("status %d", resp.StatusCode))
	}

	r.observe(operation, "ok")
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return apperrors.NewTransport(op, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func (r *REST[T]) observe(operation, status string) {
	if r.backend.metrics != nil {
		r.backend.metrics.BackendRequests.WithLabelValues(r.name, operation, status).Inc()
	}
}
