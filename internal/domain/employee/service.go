package employee

import (
	"context"
)

// EmployeeService manages employee profiles on the server.
type EmployeeService interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req EmployeeRequest) (Employee, error)
	Update(ctx context.Context, id int64, req EmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
