package model

import "github.com/hospitalms/admin-console/internal/resource"

// Doctor is a medical staff record. The backend exposes no update endpoint
// for doctors, so edits are unsupported; the schema has no status field.
type Doctor struct {
	DoctorID       string `json:"doctorID" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	ContactNumber  string `json:"contactNumber" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Address        string `json:"address" validate:"required"`
	Password       string `json:"password,omitempty"`
}

func (d Doctor) RecordID() string { return d.DoctorID }

// DoctorSchema configures the engine for the doctor screen.
func DoctorSchema() resource.Schema[Doctor] {
	return resource.Schema[Doctor]{
		Name:       "doctor",
		Collection: "doctors",
		KeyField:   "doctorID",
		Searchable: []string{"name", "specialization"},
		Empty:      func() Doctor { return Doctor{} },
		Fields: []resource.Field[Doctor]{
			strField("doctorID", true,
				func(d Doctor) string { return d.DoctorID },
				func(d *Doctor, v string) { d.DoctorID = v }),
			strField("name", true,
				func(d Doctor) string { return d.Name },
				func(d *Doctor, v string) { d.Name = v }),
			strField("specialization", true,
				func(d Doctor) string { return d.Specialization },
				func(d *Doctor, v string) { d.Specialization = v }),
			strField("contactNumber", true,
				func(d Doctor) string { return d.ContactNumber },
				func(d *Doctor, v string) { d.ContactNumber = v }),
			strField("email", true,
				func(d Doctor) string { return d.Email },
				func(d *Doctor, v string) { d.Email = v }),
			strField("address", true,
				func(d Doctor) string { return d.Address },
				func(d *Doctor, v string) { d.Address = v }),
			strField("password", false,
				func(d Doctor) string { return d.Password },
				func(d *Doctor, v string) { d.Password = v }),
		},
	}
}
