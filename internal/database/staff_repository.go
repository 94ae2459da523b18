package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// StaffRepo handles positions and employees
type StaffRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// ============================================================================
// Positions
// ============================================================================

func getPosition(ctx context.Context, q querier, id int) (*models.Position, error) {
	p := &models.Position{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, hourly_rate FROM positions WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.HourlyRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("position", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position %d: %w", id, err)
	}
	return p, nil
}

// CreatePosition inserts a job role
func (r *StaffRepo) CreatePosition(ctx context.Context, name string, hourlyRate float64) (*models.Position, error) {
	var p *models.Position
	err := withTx(ctx, r.db, r.metrics, "create_position", func(tx *sql.Tx) error {
		if err := requireUnique(ctx, tx, "positions", "name", "position", name, 0); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO positions (name, hourly_rate) VALUES (?, ?)`, name, hourlyRate)
		if err != nil {
			return fmt.Errorf("failed to insert position %q: %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get position ID after insert: %w", err)
		}
		p = &models.Position{ID: int(id), Name: name, HourlyRate: hourlyRate}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPosition retrieves a position by ID
func (r *StaffRepo) GetPosition(ctx context.Context, id int) (*models.Position, error) {
	return getPosition(ctx, r.db, id)
}

// ListPositions returns every position ordered by name
func (r *StaffRepo) ListPositions(ctx context.Context) ([]*models.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, hourly_rate FROM positions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer closeRows(rows)

	var positions []*models.Position
	for rows.Next() {
		p := &models.Position{}
		if err := rows.Scan(&p.ID, &p.Name, &p.HourlyRate); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// UpdatePosition renames a position and sets its rate
func (r *StaffRepo) UpdatePosition(ctx context.Context, id int, name string, hourlyRate float64) (*models.Position, error) {
	var p *models.Position
	err := withTx(ctx, r.db, r.metrics, "update_position", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "positions", "position", id); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "positions", "name", "position", name, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE positions SET name = ?, hourly_rate = ? WHERE id = ?`, name, hourlyRate, id,
		); err != nil {
			return fmt.Errorf("failed to update position %d: %w", id, err)
		}
		p = &models.Position{ID: id, Name: name, HourlyRate: hourlyRate}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePosition removes a position no employee holds
func (r *StaffRepo) DeletePosition(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_position", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "positions", "position", id); err != nil {
			return err
		}
		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM employees WHERE position_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to count employees in position %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("position %d is held by %d employee(s): %w", id, n, models.ErrInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete position %d: %w", id, err)
		}
		return nil
	})
}

// ============================================================================
// Employees
// ============================================================================

const employeeSelect = `
	SELECT e.id, e.first_name, e.last_name, e.position_id, p.name, e.phone, e.email, e.hired_on
	FROM employees e
	INNER JOIN positions p ON p.id = e.position_id`

func scanEmployee(s scanner) (*models.Employee, error) {
	e := &models.Employee{}
	var hiredOn string
	err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.PositionID, &e.PositionName, &e.Phone, &e.Email, &hiredOn)
	if err != nil {
		return nil, err
	}
	if e.HiredOn, err = parseDate(hiredOn); err != nil {
		return nil, err
	}
	return e, nil
}

func getEmployee(ctx context.Context, q querier, id int) (*models.Employee, error) {
	e, err := scanEmployee(q.QueryRowContext(ctx, employeeSelect+` WHERE e.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("employee", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}
	return e, nil
}

// checkEmployee validates the position reference and the optional unique email
func checkEmployee(ctx context.Context, q querier, in models.EmployeeInput, excludeID int) error {
	if err := requireExists(ctx, q, "positions", "position", in.PositionID); err != nil {
		return err
	}
	if in.Email != "" {
		if err := requireUnique(ctx, q, "employees", "email", "employee", in.Email, excludeID); err != nil {
			return err
		}
	}
	return nil
}

// CreateEmployee inserts an employee in an existing position
func (r *StaffRepo) CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	var e *models.Employee
	err := withTx(ctx, r.db, r.metrics, "create_employee", func(tx *sql.Tx) error {
		if err := checkEmployee(ctx, tx, in, 0); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO employees (first_name, last_name, position_id, phone, email, hired_on)
			VALUES (?, ?, ?, ?, ?, ?)`,
			in.FirstName, in.LastName, in.PositionID, in.Phone, in.Email, formatDate(in.HiredOn),
		)
		if err != nil {
			return fmt.Errorf("failed to insert employee %s %s: %w", in.FirstName, in.LastName, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get employee ID after insert: %w", err)
		}
		e, err = getEmployee(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEmployee retrieves an employee by ID
func (r *StaffRepo) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return getEmployee(ctx, r.db, id)
}

// ListEmployees returns employees, optionally limited to one position
func (r *StaffRepo) ListEmployees(ctx context.Context, positionID *int) ([]*models.Employee, error) {
	query := employeeSelect
	var args []any
	if positionID != nil {
		query += ` WHERE e.position_id = ?`
		args = append(args, *positionID)
	}
	query += ` ORDER BY e.last_name, e.first_name, e.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer closeRows(rows)

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// UpdateEmployee overwrites every writable field of an employee
func (r *StaffRepo) UpdateEmployee(ctx context.Context, id int, in models.EmployeeInput) (*models.Employee, error) {
	var e *models.Employee
	err := withTx(ctx, r.db, r.metrics, "update_employee", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "employees", "employee", id); err != nil {
			return err
		}
		if err := checkEmployee(ctx, tx, in, id); err != nil {
			return err
		}
		hired := formatDate(in.HiredOn)
		n, err := countRows(ctx, tx,
			`SELECT COUNT(*) FROM shifts WHERE employee_id = ? AND substr(starts_at, 1, 10) < ?`, id, hired)
		if err != nil {
			return fmt.Errorf("failed to count shifts of employee %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("employee %d has %d shift(s) before %s: %w", id, n, hired, validation.ErrInvalidRange)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE employees
			SET first_name = ?, last_name = ?, position_id = ?, phone = ?, email = ?, hired_on = ?
			WHERE id = ?`,
			in.FirstName, in.LastName, in.PositionID, in.Phone, in.Email, hired, id,
		); err != nil {
			return fmt.Errorf("failed to update employee %d: %w", id, err)
		}
		e, err = getEmployee(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEmployee removes an employee who has never been paid. Shifts cascade.
func (r *StaffRepo) DeleteEmployee(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_employee", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "employees", "employee", id); err != nil {
			return err
		}
		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM payments WHERE employee_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to count payments of employee %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("employee %d has %d payment(s): %w", id, n, models.ErrInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete employee %d: %w", id, err)
		}
		return nil
	})
}
