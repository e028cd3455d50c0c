package model

import "github.com/hospitalms/admin-console/internal/resource"

// User is a console account row. The original serves this screen from local
// sample data, so users are backed by the in-memory adapter.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

func (u User) RecordID() string { return u.ID }

// UserSchema configures the engine for the user screen.
func UserSchema() resource.Schema[User] {
	return resource.Schema[User]{
		Name:       "user",
		Collection: "users",
		KeyField:   "id",
		Searchable: []string{"name", "email"},
		Empty:      func() User { return User{} },
		Fields: []resource.Field[User]{
			strField("id", false,
				func(u User) string { return u.ID },
				func(u *User, v string) { u.ID = v }),
			strField("name", true,
				func(u User) string { return u.Name },
				func(u *User, v string) { u.Name = v }),
			strField("email", true,
				func(u User) string { return u.Email },
				func(u *User, v string) { u.Email = v }),
			strField("role", true,
				func(u User) string { return u.Role },
				func(u *User, v string) { u.Role = v }),
		},
	}
}

// SeedUsers returns the sample accounts the screen starts with.
func SeedUsers() []User {
	return []User{
		{ID: "1", Name: "John Doe", Email: "john@example.com", Role: "Admin"},
		{ID: "2", Name: "Jane Smith", Email: "jane@example.com", Role: "User"},
	}
}
