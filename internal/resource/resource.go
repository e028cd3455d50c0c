// Package resource implements the generic record-management engine shared by
// every console screen: one controller per resource holding the fetched
// collection, a pure search/filter and paginator over it, and a form state
// machine that drives create/edit submissions through the backend client.
package resource

import "context"

// Record is a single row of a managed resource. RecordID returns the
// resource's natural key (outpatientID, pharmacistID, ...), unique within
// the collection.
type Record interface {
	RecordID() string
}

// Client is the per-resource backend adapter. Adapters for operations the
// backend does not expose return an unsupported-operation error.
type Client[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Criteria is the screen's filter state: a free-text query matched as a
// case-insensitive substring of the schema's searchable fields, and an exact
// match on the schema's category field. Both conditions are ANDed.
type Criteria struct {
	Query    string
	Category string
}

// Notifier receives user-facing success/failure messages, the console
// equivalent of the original snackbar.
type Notifier interface {
	Success(resource, message string)
	Failure(resource, message string)
}

// ConfirmFunc is the caller-supplied confirmation step required before a
// record is deleted.
type ConfirmFunc func() bool
