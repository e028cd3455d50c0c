package model

import (
	"fmt"
	"strconv"

	"github.com/hospitalms/admin-console/internal/resource"
)

// Two-state status shared by outpatients and pharmacists.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Appointment statuses.
const (
	AppointmentPending   = "Pending"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

func strField[T resource.Record](name string, required bool, get func(T) string, set func(*T, string)) resource.Field[T] {
	return resource.Field[T]{
		Name:     name,
		Required: required,
		Get:      get,
		Set: func(rec *T, v string) error {
			set(rec, v)
			return nil
		},
	}
}

func intField[T resource.Record](name string, required bool, get func(T) int, set func(*T, int)) resource.Field[T] {
	return resource.Field[T]{
		Name:     name,
		Required: required,
		Get: func(rec T) string {
			return strconv.Itoa(get(rec))
		},
		Set: func(rec *T, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s must be a whole number", name)
			}
			set(rec, n)
			return nil
		},
	}
}

func floatField[T resource.Record](name string, required bool, get func(T) float64, set func(*T, float64)) resource.Field[T] {
	return resource.Field[T]{
		Name:     name,
		Required: required,
		Get: func(rec T) string {
			return strconv.FormatFloat(get(rec), 'f', -1, 64)
		},
		Set: func(rec *T, v string) error {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s must be a number", name)
			}
			set(rec, n)
			return nil
		},
	}
}
