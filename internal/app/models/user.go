package models

import (
	"time"
)

// Role defines the user role type
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleCoordinator Role = "COORDINATOR"
	RoleStudent     Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoordinator, RoleStudent:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`                              // Unique identifier for the user
	Name       string    `json:"name" db:"name" example:"Asha Menon"`                 // Display name
	Email      string    `json:"email" db:"email" example:"asha@college.edu"`         // User's email address (unique)
	Password   string    `json:"-" db:"password"`                                     // Hashed password (excluded from JSON)
	Role       Role      `json:"role" db:"role" example:"STUDENT"`                    // ADMIN, COORDINATOR or STUDENT
	Department *string   `json:"department,omitempty" db:"department" example:"CSE"`  // Required for students and coordinators, absent for admins
	RollNumber *string   `json:"rollNumber,omitempty" db:"roll_number" example:"21CS042"` // Students only
	Semester   *string   `json:"semester,omitempty" db:"semester" example:"6"`        // Students only
	IsEnabled  bool      `json:"isEnabled" db:"is_enabled" example:"true"`            // Coordinators only; disabled coordinators cannot log in
	CreatedAt  time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`
}

// DepartmentOrEmpty returns the department string, or "" for admins.
func (u *User) DepartmentOrEmpty() string {
	if u.Department == nil {
		return ""
	}
	return *u.Department
}

// Identity is the caller identity resolved from a bearer credential.
// It is attached to the request context by the auth middleware.
type Identity struct {
	UserID     int64
	Email      string
	Name       string
	Role       Role
	Department string
}
