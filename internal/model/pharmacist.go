package model

import "github.com/hospitalms/admin-console/internal/resource"

// Pharmacist is a pharmacy staff record.
type Pharmacist struct {
	PharmacistID   string `json:"pharmacistID" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	ContactNumber  string `json:"contactNumber" validate:"required"`
	Shift          string `json:"shift" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=Active Inactive"`
	Address        string `json:"address" validate:"required"`
}

func (p Pharmacist) RecordID() string { return p.PharmacistID }

// PharmacistSchema configures the engine for the pharmacist screen.
func PharmacistSchema() resource.Schema[Pharmacist] {
	return resource.Schema[Pharmacist]{
		Name:          "pharmacist",
		Collection:    "pharmacists",
		KeyField:      "pharmacistID",
		Searchable:    []string{"name", "email"},
		CategoryField: "status",
		Status: &resource.StatusSpec[Pharmacist]{
			Active:   StatusActive,
			Inactive: StatusInactive,
			Get:      func(p Pharmacist) string { return p.Status },
			Set:      func(p *Pharmacist, s string) { p.Status = s },
		},
		Empty: func() Pharmacist { return Pharmacist{Status: StatusActive} },
		Fields: []resource.Field[Pharmacist]{
			strField("pharmacistID", true,
				func(p Pharmacist) string { return p.PharmacistID },
				func(p *Pharmacist, v string) { p.PharmacistID = v }),
			strField("name", true,
				func(p Pharmacist) string { return p.Name },
				func(p *Pharmacist, v string) { p.Name = v }),
			strField("specialization", true,
				func(p Pharmacist) string { return p.Specialization },
				func(p *Pharmacist, v string) { p.Specialization = v }),
			strField("email", true,
				func(p Pharmacist) string { return p.Email },
				func(p *Pharmacist, v string) { p.Email = v }),
			strField("contactNumber", true,
				func(p Pharmacist) string { return p.ContactNumber },
				func(p *Pharmacist, v string) { p.ContactNumber = v }),
			strField("shift", true,
				func(p Pharmacist) string { return p.Shift },
				func(p *Pharmacist, v string) { p.Shift = v }),
			strField("status", true,
				func(p Pharmacist) string { return p.Status },
				func(p *Pharmacist, v string) { p.Status = v }),
			strField("address", true,
				func(p Pharmacist) string { return p.Address },
				func(p *Pharmacist, v string) { p.Address = v }),
		},
	}
}
