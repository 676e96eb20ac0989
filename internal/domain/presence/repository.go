package presence

import (
	"context"

	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// Repository stores presence records server side.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	GetByID(ctx context.Context, id int64) (Record, error)

	// GetByEmployeeAndDate returns ErrPresenceNotFound when the employee has
	// no record for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date dateonly.Date) (Record, error)

	Create(ctx context.Context, record Record) (Record, error)

	// Update persists timestamps and status.
	Update(ctx context.Context, record Record) error
}
