package resource

import "fmt"

// Field describes one editable field of a resource record. Set parses the
// form's string value into the record; Get renders the current value back.
type Field[T Record] struct {
	Name     string
	Required bool
	Get      func(T) string
	Set      func(*T, string) error
}

// StatusSpec describes a two-state status field that can be toggled between
// its active and inactive values.
type StatusSpec[T Record] struct {
	Active   string
	Inactive string
	Get      func(T) string
	Set      func(*T, string)
}

// Schema is the per-resource configuration the engine is parameterized
// with: the field list, which fields free-text search scans, which field the
// categorical filter compares against, and the optional toggleable status.
type Schema[T Record] struct {
	// Name is the singular resource name used in messages ("outpatient").
	Name string
	// Collection is the plural name used for routes, cache keys and
	// metric labels ("outpatients").
	Collection string
	// KeyField is the natural-key field, immutable while editing.
	KeyField string
	Fields   []Field[T]
	// Searchable lists field names matched by the free-text query.
	Searchable []string
	// CategoryField names the field the categorical filter compares
	// against, empty when the resource has none.
	CategoryField string
	// Status is non-nil for resources with an Active/Inactive toggle.
	Status *StatusSpec[T]
	// Empty returns a fresh draft template for the create form.
	Empty func() T
}

// FieldNamed looks up a field spec by name.
func (s Schema[T]) FieldNamed(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// SearchValues returns the record's values for the searchable fields.
func (s Schema[T]) SearchValues(rec T) []string {
	values := make([]string, 0, len(s.Searchable))
	for _, name := range s.Searchable {
		if f, ok := s.FieldNamed(name); ok {
			values = append(values, f.Get(rec))
		}
	}
	return values
}

// CategoryValue returns the record's categorical value, empty when the
// schema defines no category field.
func (s Schema[T]) CategoryValue(rec T) string {
	if s.CategoryField == "" {
		return ""
	}
	f, ok := s.FieldNamed(s.CategoryField)
	if !ok {
		return ""
	}
	return f.Get(rec)
}

// Validate checks schema consistency at wiring time.
func (s Schema[T]) Validate() error {
	if s.Name == "" || s.Collection == "" {
		return fmt.Errorf("schema needs a name and a collection name")
	}
	if s.Empty == nil {
		return fmt.Errorf("schema %s needs an empty-draft template", s.Name)
	}
	if _, ok := s.FieldNamed(s.KeyField); s.KeyField != "" && !ok {
		return fmt.Errorf("schema %s: key field %s not in field list", s.Name, s.KeyField)
	}
	for _, name := range s.Searchable {
		if _, ok := s.FieldNamed(name); !ok {
			return fmt.Errorf("schema %s: searchable field %s not in field list", s.Name, name)
		}
	}
	if s.CategoryField != "" {
		if _, ok := s.FieldNamed(s.CategoryField); !ok {
			return fmt.Errorf("schema %s: category field %s not in field list", s.Name, s.CategoryField)
		}
	}
	return nil
}
