package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

type EmployeeInput struct {
	ID        string
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Project   string `validate:"required"`
	Position  *string
}

// EmployeeService is plain CRUD over employee records. With RequireIdentity
// set every operation needs an authenticated caller.
type EmployeeService struct {
	RequireIdentity bool
	Validate        *validator.Validate
}

func (s *EmployeeService) authorize(rc *reqctx.Context) error {
	if s.RequireIdentity && !rc.Authenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// List returns employees matching filter, every employee for a zero filter.
func (s *EmployeeService) List(ctx context.Context, rc *reqctx.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	if err := s.authorize(rc); err != nil {
		return nil, err
	}

	var (
		out []domain.Employee
		err error
	)
	if filter.IsZero() {
		out, err = rc.Store.Employees().ListEmployees(ctx)
	} else {
		out, err = rc.Store.Employees().FindEmployees(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// Get returns nil without error when no employee has the id.
func (s *EmployeeService) Get(ctx context.Context, rc *reqctx.Context, id string) (*domain.Employee, error) {
	if err := s.authorize(rc); err != nil {
		return nil, err
	}

	e, err := rc.Store.Employees().GetEmployeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (s *EmployeeService) Create(ctx context.Context, rc *reqctx.Context, in EmployeeInput) (domain.Employee, error) {
	if err := s.authorize(rc); err != nil {
		return domain.Employee{}, err
	}
	if err := validateInput(s.Validate, in); err != nil {
		return domain.Employee{}, err
	}

	e := domain.Employee{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Project:   in.Project,
	}
	if in.Position != nil {
		e.Position = *in.Position
	}

	e, err := rc.Store.Employees().CreateEmployee(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	slogx.FromContext(ctx).Info("employee created", slog.String("employee_id", e.ID))
	return e, nil
}

// Update replaces the employee named by in.ID and returns the updated record.
// A missing id is ErrInvalidInput, an unknown one ErrEmployeeNotFound.
func (s *EmployeeService) Update(ctx context.Context, rc *reqctx.Context, in EmployeeInput) (domain.Employee, error) {
	if err := s.authorize(rc); err != nil {
		return domain.Employee{}, err
	}
	if in.ID == "" {
		return domain.Employee{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if err := validateInput(s.Validate, in); err != nil {
		return domain.Employee{}, err
	}

	e, err := rc.Store.Employees().UpdateEmployee(ctx, domain.EmployeeUpdate{
		ID:        in.ID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Project:   in.Project,
		Position:  in.Position,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Employee{}, ErrEmployeeNotFound
		}
		return domain.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return e, nil
}

// Remove reports whether an employee was deleted.
func (s *EmployeeService) Remove(ctx context.Context, rc *reqctx.Context, id string) (bool, error) {
	if err := s.authorize(rc); err != nil {
		return false, err
	}

	err := rc.Store.Employees().DeleteEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("remove employee: %w", err)
	}

	slogx.FromContext(ctx).Info("employee removed", slog.String("employee_id", id))
	return true, nil
}
