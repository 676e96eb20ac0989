// Package memory keeps every devapi table in process memory. It backs the
// default development server and the client's end-to-end tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

type employeeRow struct {
	ID        int64
	UserID    *int64
	Name      string
	Position  string
	Phone     *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type presenceRow struct {
	ID           int64
	EmployeeID   int64
	Date         dateonly.Date
	CheckInTime  *string
	CheckOutTime *string
	Status       string
}

type reportRow struct {
	ID         int64
	EmployeeID int64
	Type       string
	StartDate  dateonly.Date
	EndDate    dateonly.Date
	Content    string
	CreatedAt  time.Time
}

type tables struct {
	users     map[int64]user.User
	employees map[int64]employeeRow
	presences map[int64]presenceRow
	reports   map[int64]reportRow
	seq       map[string]int64
}

func (t tables) clone() tables {
	return tables{
		users:     maps.Clone(t.users),
		employees: maps.Clone(t.employees),
		presences: maps.Clone(t.presences),
		reports:   maps.Clone(t.reports),
		seq:       maps.Clone(t.seq),
	}
}

// DB is the shared store behind every memory repository.
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    tables
	now  func() time.Time
}

func NewDB() *DB {
	return &DB{
		t: tables{
			users:     make(map[int64]user.User),
			employees: make(map[int64]employeeRow),
			presences: make(map[int64]presenceRow),
			reports:   make(map[int64]reportRow),
			seq:       make(map[string]int64),
		},
		now: time.Now,
	}
}

// SetClock replaces the time source used for created_at/updated_at.
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

// next returns the next id of a table. Callers hold mu.
func (db *DB) next(table string) int64 {
	db.t.seq[table]++
	return db.t.seq[table]
}

// InTx serializes units of work and restores the previous tables when fn
// fails.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	saved := db.t.clone()
	db.mu.RUnlock()

	if err := fn(ctx); err != nil {
		db.mu.Lock()
		db.t = saved
		db.mu.Unlock()
		return err
	}
	return nil
}
