package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (mongo, sqlite)
// implement this and expose one sub-repository per entity kind.
//
// Every write touches a single record, drivers only need single-document
// atomicity.
type Store interface {
	Users() Users
	Employees() Employees

	// ApplyMigrations brings the schema (tables, indexes) up to date.
	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user and returns it with the ID assigned by
	// the driver. ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
}

type Employees interface {
	// CreateEmployee inserts a new employee and returns it with its ID.
	CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error)

	// GetEmployeeByID returns an employee by id.
	GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error)

	// ListEmployees returns all employees in insertion order.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)

	// FindEmployees returns the employees matching every non-empty filter field.
	FindEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)

	// UpdateEmployee applies u and returns the updated record.
	UpdateEmployee(ctx context.Context, u domain.EmployeeUpdate) (domain.Employee, error)

	// DeleteEmployee removes an employee, ErrNotFound if there was none.
	DeleteEmployee(ctx context.Context, id string) error
}
