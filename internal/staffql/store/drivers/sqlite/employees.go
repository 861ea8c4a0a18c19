package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/idx"
	pkgerrors "github.com/pkg/errors"
)

const employeeColumns = `id, first_name, last_name, project, position, created_at, updated_at`

type employeesRepo struct {
	db      *sql.DB
	timeout time.Duration
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Project, &e.Position, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (r *employeesRepo) CreateEmployee(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	e.ID = idx.New()
	e.CreatedAt, e.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (`+employeeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.FirstName, e.LastName, e.Project, e.Position, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return domain.Employee{}, pkgerrors.Wrap(err, "sqlite: insert employee")
	}
	return e, nil
}

func (r *employeesRepo) GetEmployeeByID(ctx context.Context, id string) (domain.Employee, error) {
	if !idx.Valid(id) {
		return domain.Employee{}, store.ErrNotFound
	}

	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	e, err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		if err = mapNotFound(err); err == store.ErrNotFound {
			return domain.Employee{}, err
		}
		return domain.Employee{}, pkgerrors.Wrap(err, "sqlite: select employee")
	}
	return e, nil
}

func (r *employeesRepo) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return r.FindEmployees(ctx, domain.EmployeeFilter{})
}

func (r *employeesRepo) FindEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if filter.Project != "" {
		where = append(where, "project = ?")
		args = append(args, filter.Project)
	}
	if filter.Position != "" {
		where = append(where, "position = ?")
		args = append(args, filter.Position)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "sqlite: list employees")
	}
	defer rows.Close()

	out := make([]domain.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "sqlite: scan employee")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "sqlite: list employees")
	}
	return out, nil
}

func (r *employeesRepo) UpdateEmployee(ctx context.Context, u domain.EmployeeUpdate) (domain.Employee, error) {
	if !idx.Valid(u.ID) {
		return domain.Employee{}, store.ErrNotFound
	}

	updateCtx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	var position sql.NullString
	if u.Position != nil {
		position = sql.NullString{String: *u.Position, Valid: true}
	}

	res, err := r.db.ExecContext(updateCtx,
		`UPDATE employees
		    SET first_name = ?, last_name = ?, project = ?,
		        position = COALESCE(?, position), updated_at = ?
		  WHERE id = ?`,
		u.FirstName, u.LastName, u.Project, position, time.Now().UTC(), u.ID,
	)
	if err != nil {
		return domain.Employee{}, pkgerrors.Wrap(err, "sqlite: update employee")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Employee{}, pkgerrors.Wrap(err, "sqlite: update employee")
	}
	if n == 0 {
		return domain.Employee{}, store.ErrNotFound
	}
	return r.GetEmployeeByID(ctx, u.ID)
}

func (r *employeesRepo) DeleteEmployee(ctx context.Context, id string) error {
	if !idx.Valid(id) {
		return store.ErrNotFound
	}

	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return pkgerrors.Wrap(err, "sqlite: delete employee")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "sqlite: delete employee")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
