// Package notifier implements the console's notification sink, the
// replacement for the original screens' snackbar.
package notifier

import (
	"sync"
	"time"

	"github.com/hospitalms/admin-console/pkg/logger"
)

// Notification is one user-facing success/failure message.
type Notification struct {
	Resource string    `json:"resource"`
	Level    string    `json:"level"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	logger *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &LogSink{logger: log}
}

func (s *LogSink) Success(resource, message string) {
	s.logger.Info(message, "resource", resource)
}

func (s *LogSink) Failure(resource, message string) {
	s.logger.Warn(message, "resource", resource)
}

// Recorder keeps the most recent notifications so the console can render
// them after the fact.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewRecorder(limit int) *Recorder {
	if limit < 1 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Success(resource, message string) {
	r.record(Notification{Resource: resource, Level: "success", Message: message, At: time.Now()})
}

func (r *Recorder) Failure(resource, message string) {
	r.record(Notification{Resource: resource, Level: "error", Message: message, At: time.Now()})
}

// Recent returns the recorded notifications, newest first.
func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	for i, n := range r.items {
		out[len(r.items)-1-i] = n
	}
	return out
}

func (r *Recorder) record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
}

// Fanout forwards each notification to every sink.
type Fanout []interface {
	Success(resource, message string)
	Failure(resource, message string)
}

func (f Fanout) Success(resource, message string) {
	for _, s := range f {
		s.Success(resource, message)
	}
}

func (f Fanout) Failure(resource, message string) {
	for _, s := range f {
		s.Failure(resource, message)
	}
}
