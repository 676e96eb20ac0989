package memory

import (
	"context"
	"sort"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

type employeeRepositoryImpl struct {
	db *DB
}

func NewEmployeeRepository(db *DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// toEmployee joins the row with its user account. Callers hold mu.
func (r *employeeRepositoryImpl) toEmployee(row employeeRow) employee.Employee {
	e := employee.Employee{
		ID:        row.ID,
		Name:      row.Name,
		Position:  row.Position,
		Phone:     row.Phone,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.UserID != nil {
		if u, ok := r.db.t.users[*row.UserID]; ok {
			identity := u.Identity()
			e.User = &identity
			e.UserUsername = u.Username
			e.UserEmail = u.Email
		}
	}
	return e
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.db.t.employees))
	for _, row := range r.db.t.employees {
		employees = append(employees, r.toEmployee(row))
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })
	return employees, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.t.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.toEmployee(row), nil
}

func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID int64) (employee.Employee, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.t.employees {
		if row.UserID != nil && *row.UserID == userID {
			return r.toEmployee(row), nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// checkUser validates the account link of a write. Callers hold mu.
func (r *employeeRepositoryImpl) checkUser(userID *int64, self int64) error {
	if userID == nil {
		return nil
	}
	if _, ok := r.db.t.users[*userID]; !ok {
		return user.ErrUserNotFound
	}
	for _, row := range r.db.t.employees {
		if row.ID != self && row.UserID != nil && *row.UserID == *userID {
			return employee.ErrUserAlreadyLinked
		}
	}
	return nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkUser(req.UserID, 0); err != nil {
		return employee.Employee{}, err
	}

	now := r.db.now()
	row := employeeRow{
		ID:        r.db.next("employees"),
		UserID:    req.UserID,
		Name:      req.Name,
		Position:  req.Position,
		Phone:     optional(req.Phone),
		Email:     optional(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.db.t.employees[row.ID] = row
	return r.toEmployee(row), nil
}

// Update replaces the profile fields. The account link only changes when the
// request names one.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.t.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if err := r.checkUser(req.UserID, id); err != nil {
		return employee.Employee{}, err
	}

	row.Name = req.Name
	row.Position = req.Position
	row.Phone = optional(req.Phone)
	row.Email = optional(req.Email)
	if req.UserID != nil {
		row.UserID = req.UserID
	}
	row.UpdatedAt = r.db.now()
	r.db.t.employees[id] = row
	return r.toEmployee(row), nil
}

// Delete removes the profile with its presences and reports.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.db.t.employees, id)
	for pid, p := range r.db.t.presences {
		if p.EmployeeID == id {
			delete(r.db.t.presences, pid)
		}
	}
	for rid, rep := range r.db.t.reports {
		if rep.EmployeeID == id {
			delete(r.db.t.reports, rid)
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
