package resource

import (
	"context"

	apperrors "github.com/hospitalms/admin-console/pkg/errors"
)

// FormState is the modal form's lifecycle state.
type FormState int

const (
	FormClosed FormState = iota
	FormCreate
	FormEdit
)

func (s FormState) String() string {
	switch s {
	case FormCreate:
		return "create"
	case FormEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form is the modal form controller: it holds one mutable draft and a mode
// flag, and dispatches to the resource controller on submit. The draft is
// not part of the collection until a create/update round-trip succeeds.
type Form[T Record] struct {
	ctrl   *Controller[T]
	state  FormState
	editID string
	draft  T
}

// NewForm builds a closed form bound to one resource controller.
func NewForm[T Record](ctrl *Controller[T]) *Form[T] {
	return &Form[T]{ctrl: ctrl}
}

// State returns the form's current lifecycle state.
func (f *Form[T]) State() FormState { return f.state }

// EditID returns the id of the record being edited, empty in create mode.
func (f *Form[T]) EditID() string { return f.editID }

// Draft returns a copy of the in-progress draft.
func (f *Form[T]) Draft() T { return f.draft }

// OpenCreate opens the form with the resource's empty draft template.
func (f *Form[T]) OpenCreate() {
	f.state = FormCreate
	f.editID = ""
	f.draft = f.ctrl.schema.Empty()
}

// OpenEdit opens the form with a copy of an existing record.
func (f *Form[T]) OpenEdit(rec T) {
	f.state = FormEdit
	f.editID = rec.RecordID()
	f.draft = rec
}

// SetField writes one form field into the draft. The natural-key field is
// immutable while editing: re-submitting its current value is a no-op,
// changing it is rejected.
func (f *Form[T]) SetField(name, value string) error {
	if f.state == FormClosed {
		return apperrors.NewValidation("form is not open", nil)
	}

	field, ok := f.ctrl.schema.FieldNamed(name)
	if !ok {
		return apperrors.NewValidation("unknown field "+name, nil)
	}

	if f.state == FormEdit && name == f.ctrl.schema.KeyField {
		if field.Get(f.draft) == value {
			return nil
		}
		return apperrors.NewValidation(name+" cannot be changed", nil)
	}

	if err := field.Set(&f.draft, value); err != nil {
		return apperrors.NewValidation("invalid value for "+name, err)
	}
	return nil
}

// Submit dispatches the draft to the controller and hands back the record
// as persisted, including backend-assigned fields. On success the form
// closes and the draft is cleared; on failure both are preserved so the
// user can retry without re-typing.
func (f *Form[T]) Submit(ctx context.Context) (T, error) {
	var persisted T
	var err error
	switch f.state {
	case FormCreate:
		persisted, err = f.ctrl.Create(ctx, f.draft)
	case FormEdit:
		persisted, err = f.ctrl.Update(ctx, f.editID, f.draft)
	default:
		return persisted, apperrors.NewValidation("form is not open", nil)
	}

	if err != nil {
		return persisted, err
	}
	f.reset()
	return persisted, nil
}

// Cancel closes the form and discards the draft unconditionally.
func (f *Form[T]) Cancel() {
	f.reset()
}

func (f *Form[T]) reset() {
	var zero T
	f.state = FormClosed
	f.editID = ""
	f.draft = zero
}
