package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hospitalms/admin-console/internal/resource"
	apperrors "github.com/hospitalms/admin-console/pkg/errors"
	"github.com/hospitalms/admin-console/pkg/httputil"
)

// Resource exposes one screen's operations over HTTP. All six screens mount
// the same handler parameterized by their schema; the per-request form
// mirrors the modal's open-fill-submit lifecycle.
type Resource[T resource.Record] struct {
	schema resource.Schema[T]
	ctrl   *resource.Controller[T]
}

// NewResource builds the handler for one resource controller.
func NewResource[T resource.Record](ctrl *resource.Controller[T]) *Resource[T] {
	return &Resource[T]{schema: ctrl.Schema(), ctrl: ctrl}
}

func (h *Resource[T]) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/" + h.schema.Collection)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.POST("/refresh", h.Refresh)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		if h.schema.Status != nil {
			g.PATCH("/:id/status", h.ToggleStatus)
		}
	}
}

// List applies the request's filter criteria and responds with the current
// page window plus pagination metadata. The first call fetches the
// collection from the backend.
func (h *Resource[T]) List(c *gin.Context) {
	if !h.ensureLoaded(c) {
		return
	}

	// Validate the whole request before touching controller state, so a
	// bad page number cannot half-apply new criteria.
	page, pageSet := 0, false
	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewValidation("page must be a number", err))
			return
		}
		page, pageSet = n, true
	}

	h.ctrl.SetQuery(c.Query("search"))
	h.ctrl.SetCategory(c.Query("status"))
	if pageSet {
		h.ctrl.SetPage(page)
	}

	httputil.RespondWithPagination(c,
		h.ctrl.Window(), h.ctrl.Page(), h.ctrl.PageSize(), len(h.ctrl.Visible()))
}

func (h *Resource[T]) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	form := resource.NewForm(h.ctrl)
	form.OpenCreate()
	if err := h.fill(form, payload); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	created, err := form.Submit(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	// The persisted record carries backend-assigned fields the draft did
	// not have, such as a generated id.
	if rec, ok := h.ctrl.Find(created.RecordID()); ok {
		httputil.RespondWithCreated(c, rec)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Resource[T]) Update(c *gin.Context) {
	if !h.ensureLoaded(c) {
		return
	}

	id := c.Param("id")
	rec, ok := h.ctrl.Find(id)
	if !ok {
		httputil.RespondWithError(c, apperrors.NewNotFound(h.schema.Name, id))
		return
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.RespondWithError(c, apperrors.NewValidation("invalid request body", err))
		return
	}

	form := resource.NewForm(h.ctrl)
	form.OpenEdit(rec)
	if err := h.fill(form, payload); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	updated, err := form.Submit(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if rec, ok := h.ctrl.Find(id); ok {
		httputil.RespondWithSuccess(c, rec)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

// Delete removes a record. The confirmation step the screen shows before a
// delete is carried as the confirm query parameter.
func (h *Resource[T]) Delete(c *gin.Context) {
	id := c.Param("id")
	confirmed := c.Query("confirm") == "true"

	err := h.ctrl.Remove(c.Request.Context(), id, func() bool { return confirmed })
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"id": id})
}

func (h *Resource[T]) ToggleStatus(c *gin.Context) {
	if !h.ensureLoaded(c) {
		return
	}

	id := c.Param("id")
	if err := h.ctrl.ToggleStatus(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if rec, ok := h.ctrl.Find(id); ok {
		httputil.RespondWithSuccess(c, rec)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"id": id})
}

func (h *Resource[T]) Refresh(c *gin.Context) {
	if err := h.ctrl.Refresh(c.Request.Context()); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"count": len(h.ctrl.Collection())})
}

// ensureLoaded fetches the collection on the first request that needs it.
// It writes the error response itself when the fetch fails.
func (h *Resource[T]) ensureLoaded(c *gin.Context) bool {
	if h.ctrl.Loaded() {
		return true
	}
	if err := h.ctrl.Refresh(c.Request.Context()); err != nil {
		httputil.RespondWithError(c, err)
		return false
	}
	return true
}

// fill writes the payload's fields into the form in schema order, ignoring
// payload keys the schema does not know about.
func (h *Resource[T]) fill(form *resource.Form[T], payload map[string]interface{}) error {
	for _, field := range h.schema.Fields {
		raw, ok := payload[field.Name]
		if !ok {
			continue
		}
		value, ok := scalarString(raw)
		if !ok {
			return apperrors.NewValidation(field.Name+" must be a scalar value", nil)
		}
		if err := form.SetField(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case nil:
		return "", true
	default:
		return "", false
	}
}
