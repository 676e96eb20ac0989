package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.nom, e.poste, e.telephone, e.email, e.created_at, e.updated_at,
		u.id, u.username, u.email, u.role
	FROM employes e
	LEFT JOIN users u ON u.id = e.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		e         employee.Employee
		userID    *int64
		username  *string
		userEmail *string
		role      *string
	)
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Position,
		&e.Phone,
		&e.Email,
		&e.CreatedAt,
		&e.UpdatedAt,
		&userID,
		&username,
		&userEmail,
		&role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	if userID != nil {
		e.User = &user.Identity{
			ID:       *userID,
			Username: deref(username),
			Email:    deref(userEmail),
			Role:     user.Role(deref(role)),
		}
		e.UserUsername = e.User.Username
		e.UserEmail = e.User.Email
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` ORDER BY e.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employes (user_id, nom, poste, telephone, email)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id
	`
	var id int64
	err := q.QueryRow(ctx, query, req.UserID, req.Name, req.Position, req.Phone, req.Email).Scan(&id)
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return r.GetByID(ctx, id)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employes
		SET nom = $1, poste = $2, telephone = NULLIF($3, ''), email = NULLIF($4, ''),
			user_id = COALESCE($5, user_id), updated_at = NOW()
		WHERE id = $6
		RETURNING id
	`
	var updatedID int64
	err := q.QueryRow(ctx, query, req.Name, req.Position, req.Phone, req.Email, req.UserID, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, mapEmployeeWriteError(err)
	}
	return r.GetByID(ctx, updatedID)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "employes_user_id_key"):
		return employee.ErrUserAlreadyLinked
	case isForeignKeyViolation(err):
		return user.ErrUserNotFound
	}
	return fmt.Errorf("failed to write employee: %w", err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
