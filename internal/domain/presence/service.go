package presence

import (
	"context"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// TimeClock applies the presence rules on the server.
type TimeClock interface {
	List(ctx context.Context, caller user.Identity, filter Filter) ([]Record, error)
	GetOwn(ctx context.Context, caller user.Identity) (Record, error)
	CreateOwn(ctx context.Context, caller user.Identity) (Record, error)
	Perform(ctx context.Context, caller user.Identity, recordID int64, action Action) (Record, error)
	PerformOwn(ctx context.Context, caller user.Identity, action Action) (Record, error)

	// OpenDay gives every employee without a record for day an absent one.
	OpenDay(ctx context.Context, day dateonly.Date) (created int, err error)
}
