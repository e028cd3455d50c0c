package resource

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/hospitalms/admin-console/pkg/errors"
	"github.com/hospitalms/admin-console/pkg/logger"
	"github.com/hospitalms/admin-console/pkg/metrics"
)

// DefaultPageSize matches the original screens' fixed page size.
const DefaultPageSize = 5

// ControllerConfig carries the controller's collaborators. Notifier,
// Logger and Metrics are optional.
type ControllerConfig struct {
	PageSize int
	Notifier Notifier
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
}

// Controller owns the in-memory collection for one resource and mediates
// every mutation through the backend client. Writes never patch the
// collection locally: a successful write is followed by a full re-fetch, a
// failed one leaves the collection untouched.
type Controller[T Record] struct {
	schema   Schema[T]
	client   Client[T]
	notifier Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate

	mu         sync.Mutex
	collection []T
	loaded     bool
	criteria   Criteria
	page       int
	pageSize   int
	writing    bool
}

// NewController builds a controller for one resource screen.
func NewController[T Record](schema Schema[T], client Client[T], cfg ControllerConfig) *Controller[T] {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Notifier == nil {
		cfg.Notifier = noopNotifier{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewLogger(nil)
	}
	return &Controller[T]{
		schema:   schema,
		client:   client,
		notifier: cfg.Notifier,
		logger:   cfg.Logger.WithResource(schema.Collection),
		metrics:  cfg.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		page:     1,
		pageSize: cfg.PageSize,
	}
}

// Schema returns the resource schema the controller was built with.
func (c *Controller[T]) Schema() Schema[T] { return c.schema }

// Refresh re-fetches the whole collection. On failure the prior collection
// is kept so the screen can keep rendering the last known state.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	records, err := c.client.List(ctx)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RefreshFailures.WithLabelValues(c.schema.Collection).Inc()
		}
		c.logger.Error(err, "refresh failed")
		c.notifier.Failure(c.schema.Name, "error loading "+c.schema.Collection)
		return err
	}

	c.mu.Lock()
	c.collection = records
	c.loaded = true
	c.page = ClampPage(c.page, len(c.visibleLocked()), c.pageSize)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.CollectionSize.WithLabelValues(c.schema.Collection).Set(float64(len(records)))
	}
	c.logger.Debug("collection refreshed", "count", len(records))
	return nil
}

// Loaded reports whether the collection has been fetched at least once.
func (c *Controller[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Create validates the draft, sends it to the backend and re-fetches. The
// record the backend persisted comes back to the caller, carrying any
// fields the backend assigned (ids for users, transactions, appointments).
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T
	if err := c.validateDraft(draft); err != nil {
		c.notifier.Failure(c.schema.Name, "error saving "+c.schema.Name)
		return zero, err
	}
	if err := c.beginWrite(); err != nil {
		return zero, err
	}
	defer c.endWrite()

	created, err := c.client.Create(ctx, draft)
	if err != nil {
		c.logger.Error(err, "create failed")
		c.notifier.Failure(c.schema.Name, "error saving "+c.schema.Name)
		return zero, err
	}

	c.notifier.Success(c.schema.Name, c.schema.Name+" added")
	return created, c.Refresh(ctx)
}

// Update sends the full edited record to the backend and re-fetches,
// returning the record as the backend persisted it.
func (c *Controller[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	var zero T
	if draft.RecordID() != id {
		return zero, apperrors.NewValidation("record id does not match the edited record", nil)
	}
	if err := c.validateDraft(draft); err != nil {
		c.notifier.Failure(c.schema.Name, "error saving "+c.schema.Name)
		return zero, err
	}
	if err := c.beginWrite(); err != nil {
		return zero, err
	}
	defer c.endWrite()

	updated, err := c.client.Update(ctx, id, draft)
	if err != nil {
		c.logger.Error(err, "update failed", "id", id)
		c.notifier.Failure(c.schema.Name, "error saving "+c.schema.Name)
		return zero, err
	}

	c.notifier.Success(c.schema.Name, c.schema.Name+" updated")
	return updated, c.Refresh(ctx)
}

// Remove deletes a record after the caller-supplied confirmation step.
func (c *Controller[T]) Remove(ctx context.Context, id string, confirm ConfirmFunc) error {
	if confirm == nil || !confirm() {
		return apperrors.NewNotConfirmed(c.schema.Name)
	}
	if err := c.beginWrite(); err != nil {
		return err
	}
	defer c.endWrite()

	if err := c.client.Delete(ctx, id); err != nil {
		c.logger.Error(err, "delete failed", "id", id)
		c.notifier.Failure(c.schema.Name, "error deleting "+c.schema.Name)
		return err
	}

	c.notifier.Success(c.schema.Name, c.schema.Name+" deleted")
	return c.Refresh(ctx)
}

// ToggleStatus flips the record's status to its complement and sends the
// complete record through the update path. The local collection is not
// touched until the write round-trip confirms.
func (c *Controller[T]) ToggleStatus(ctx context.Context, id string) error {
	spec := c.schema.Status
	if spec == nil {
		return apperrors.NewUnsupported(c.schema.Name, "status toggle")
	}

	rec, ok := c.Find(id)
	if !ok {
		return apperrors.NewNotFound(c.schema.Name, id)
	}

	next := spec.Active
	if spec.Get(rec) == spec.Active {
		next = spec.Inactive
	}
	spec.Set(&rec, next)

	if err := c.beginWrite(); err != nil {
		return err
	}
	defer c.endWrite()

	if _, err := c.client.Update(ctx, id, rec); err != nil {
		c.logger.Error(err, "status toggle failed", "id", id)
		c.notifier.Failure(c.schema.Name, "error updating status")
		return err
	}

	c.notifier.Success(c.schema.Name, "status updated")
	return c.Refresh(ctx)
}

// Find returns a copy of the record with the given id.
func (c *Controller[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.collection {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Collection returns a copy of the full fetched collection.
func (c *Controller[T]) Collection() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.collection))
	copy(out, c.collection)
	return out
}

// SetQuery updates the free-text filter. A change resets to page 1 so a
// shrinking subset can never leave the screen on an empty page.
func (c *Controller[T]) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.criteria.Query == query {
		return
	}
	c.criteria.Query = query
	c.page = 1
}

// SetCategory updates the categorical filter, resetting to page 1 on change.
func (c *Controller[T]) SetCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.criteria.Category == category {
		return
	}
	c.criteria.Category = category
	c.page = 1
}

// SetPage moves to the requested page, clamped to the visible subset.
func (c *Controller[T]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = ClampPage(page, len(c.visibleLocked()), c.pageSize)
}

// Criteria returns the current filter state.
func (c *Controller[T]) Criteria() Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Page returns the current page number.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the fixed page size.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// Visible returns the filtered subset of the collection.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

// Window returns the slice of the visible subset for the current page.
func (c *Controller[T]) Window() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageWindow(c.visibleLocked(), c.pageSize, c.page)
}

// PageCount returns the page count for the visible subset.
func (c *Controller[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PageCount(len(c.visibleLocked()), c.pageSize)
}

func (c *Controller[T]) visibleLocked() []T {
	return Visible(c.collection, c.criteria, c.schema)
}

func (c *Controller[T]) validateDraft(draft T) error {
	if err := c.validate.Struct(draft); err != nil {
		return apperrors.NewValidation("missing or invalid required fields", err)
	}
	return nil
}

// beginWrite marks a write lifecycle as in flight. Only one write may be in
// flight per controller; the submit affordance stays disabled until the
// prior call resolves.
func (c *Controller[T]) beginWrite() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writing {
		if c.metrics != nil {
			c.metrics.WritesRejected.WithLabelValues(c.schema.Collection).Inc()
		}
		return apperrors.NewWriteInFlight(c.schema.Name)
	}
	c.writing = true
	return nil
}

func (c *Controller[T]) endWrite() {
	c.mu.Lock()
	c.writing = false
	c.mu.Unlock()
}

type noopNotifier struct{}

func (noopNotifier) Success(string, string) {}
func (noopNotifier) Failure(string, string) {}
