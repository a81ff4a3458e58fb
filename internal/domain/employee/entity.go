package employee

import (
	"time"
)

// Employee is the slice of the employee directory this core depends on.
type Employee struct {
	ID          string
	FullName    string
	Email       *string
	BiometricID *string
	JoiningDate time.Time
	Role        string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the employee is currently employed.
func (e Employee) IsActive() bool {
	return e.Status == "active"
}
