package employee

import (
	"context"
)

type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByUserID(ctx context.Context, userID int64) (Employee, error)
	Create(ctx context.Context, req EmployeeRequest) (Employee, error)
	Update(ctx context.Context, id int64, req EmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id int64) error
}
