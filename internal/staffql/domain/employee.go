package domain

import "time"

type Employee struct {
	ID        string
	FirstName string
	LastName  string
	Project   string
	Position  string // optional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeFilter narrows a listing. Empty fields match everything.
type EmployeeFilter struct {
	Project  string
	Position string
}

// IsZero reports whether the filter matches every employee.
func (f EmployeeFilter) IsZero() bool {
	return f.Project == "" && f.Position == ""
}

// EmployeeUpdate replaces the required fields of an employee. Position is only
// changed when non-nil.
type EmployeeUpdate struct {
	ID        string
	FirstName string
	LastName  string
	Project   string
	Position  *string
}
