package model

import "github.com/hospitalms/admin-console/internal/resource"

// Appointment is a booking record. The id is assigned by the backend on
// create; the status is three-valued so there is no binary toggle, but the
// screen filters on it categorically.
type Appointment struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName" validate:"required"`
	DoctorName  string `json:"doctorName" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=Pending Completed Cancelled"`
}

func (a Appointment) RecordID() string { return a.ID }

// AppointmentSchema configures the engine for the appointment screen:
// searchable by patient name, filterable by status.
func AppointmentSchema() resource.Schema[Appointment] {
	return resource.Schema[Appointment]{
		Name:          "appointment",
		Collection:    "appointments",
		KeyField:      "id",
		Searchable:    []string{"patientName"},
		CategoryField: "status",
		Empty:         func() Appointment { return Appointment{Status: AppointmentPending} },
		Fields: []resource.Field[Appointment]{
			strField("id", false,
				func(a Appointment) string { return a.ID },
				func(a *Appointment, v string) { a.ID = v }),
			strField("patientName", true,
				func(a Appointment) string { return a.PatientName },
				func(a *Appointment, v string) { a.PatientName = v }),
			strField("doctorName", true,
				func(a Appointment) string { return a.DoctorName },
				func(a *Appointment, v string) { a.DoctorName = v }),
			strField("date", true,
				func(a Appointment) string { return a.Date },
				func(a *Appointment, v string) { a.Date = v }),
			strField("status", true,
				func(a Appointment) string { return a.Status },
				func(a *Appointment, v string) { a.Status = v }),
		},
	}
}
