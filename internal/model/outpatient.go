package model

import "github.com/hospitalms/admin-console/internal/resource"

// Outpatient is a registered outpatient record. The backend owns the
// schema; field names mirror its JSON contract.
type Outpatient struct {
	OutpatientID string `json:"outpatientID" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Age          int    `json:"age" validate:"required,gt=0"`
	Gender       string `json:"gender" validate:"required"`
	Shift        string `json:"shift" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	Password     string `json:"password,omitempty"`
	Status       string `json:"status" validate:"required,oneof=Active Inactive"`
}

func (o Outpatient) RecordID() string { return o.OutpatientID }

// OutpatientSchema configures the engine for the outpatient screen:
// searchable by name and email, filterable and toggleable on status, keyed
// by the immutable outpatientID.
func OutpatientSchema() resource.Schema[Outpatient] {
	return resource.Schema[Outpatient]{
		Name:          "outpatient",
		Collection:    "outpatients",
		KeyField:      "outpatientID",
		Searchable:    []string{"name", "email"},
		CategoryField: "status",
		Status: &resource.StatusSpec[Outpatient]{
			Active:   StatusActive,
			Inactive: StatusInactive,
			Get:      func(o Outpatient) string { return o.Status },
			Set:      func(o *Outpatient, s string) { o.Status = s },
		},
		Empty: func() Outpatient { return Outpatient{Status: StatusActive} },
		Fields: []resource.Field[Outpatient]{
			strField("outpatientID", true,
				func(o Outpatient) string { return o.OutpatientID },
				func(o *Outpatient, v string) { o.OutpatientID = v }),
			strField("name", true,
				func(o Outpatient) string { return o.Name },
				func(o *Outpatient, v string) { o.Name = v }),
			intField("age", true,
				func(o Outpatient) int { return o.Age },
				func(o *Outpatient, v int) { o.Age = v }),
			strField("gender", true,
				func(o Outpatient) string { return o.Gender },
				func(o *Outpatient, v string) { o.Gender = v }),
			strField("shift", true,
				func(o Outpatient) string { return o.Shift },
				func(o *Outpatient, v string) { o.Shift = v }),
			strField("email", true,
				func(o Outpatient) string { return o.Email },
				func(o *Outpatient, v string) { o.Email = v }),
			strField("phoneNumber", true,
				func(o Outpatient) string { return o.PhoneNumber },
				func(o *Outpatient, v string) { o.PhoneNumber = v }),
			strField("password", false,
				func(o Outpatient) string { return o.Password },
				func(o *Outpatient, v string) { o.Password = v }),
			strField("status", true,
				func(o Outpatient) string { return o.Status },
				func(o *Outpatient, v string) { o.Status = v }),
		},
	}
}
