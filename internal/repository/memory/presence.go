package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

type presenceRepositoryImpl struct {
	db *DB
}

func NewPresenceRepository(db *DB) presence.Repository {
	return &presenceRepositoryImpl{db: db}
}

// toRecord joins the row with the employee and its account. Callers hold mu.
func (r *presenceRepositoryImpl) toRecord(row presenceRow) presence.Record {
	rec := presence.Record{
		ID:           row.ID,
		Date:         row.Date,
		CheckInTime:  row.CheckInTime,
		CheckOutTime: row.CheckOutTime,
		Status:       presence.Status(row.Status),
	}
	if emp, ok := r.db.t.employees[row.EmployeeID]; ok {
		rec.Employee = presence.EmployeeRef{ID: emp.ID, Name: emp.Name}
		if emp.UserID != nil {
			if u, ok := r.db.t.users[*emp.UserID]; ok {
				rec.Employee.User = presence.UserRef{ID: u.ID, Username: u.Username}
			}
		}
	}
	return rec
}

func (r *presenceRepositoryImpl) List(ctx context.Context, filter presence.ListFilter) ([]presence.Record, error) {
	var date dateonly.Date
	if filter.Date != "" {
		d, err := dateonly.ParseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		date = d
	}
	status := filter.Status
	if status == presence.StatusAll {
		status = ""
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	records := make([]presence.Record, 0)
	for _, row := range r.db.t.presences {
		if filter.Date != "" && !row.Date.SameDay(date) {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		rec := r.toRecord(row)
		if filter.OwnerUserID != nil && rec.OwnerUserID() != *filter.OwnerUserID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Employee.Name), search) &&
			!strings.Contains(strings.ToLower(rec.Employee.User.Username), search) {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.SameDay(records[j].Date) {
			return records[i].Date.After(records[j].Date.Time)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (r *presenceRepositoryImpl) GetByID(ctx context.Context, id int64) (presence.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.t.presences[id]
	if !ok {
		return presence.Record{}, presence.ErrPresenceNotFound
	}
	return r.toRecord(row), nil
}

func (r *presenceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date dateonly.Date) (presence.Record, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.t.presences {
		if row.EmployeeID == employeeID && row.Date.SameDay(date) {
			return r.toRecord(row), nil
		}
	}
	return presence.Record{}, presence.ErrPresenceNotFound
}

// Create enforces one record per employee and day.
func (r *presenceRepositoryImpl) Create(ctx context.Context, record presence.Record) (presence.Record, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.employees[record.Employee.ID]; !ok {
		return presence.Record{}, presence.ErrNoEmployeeProfile
	}
	for _, row := range r.db.t.presences {
		if row.EmployeeID == record.Employee.ID && row.Date.SameDay(record.Date) {
			return presence.Record{}, presence.ErrPresenceExists
		}
	}

	row := presenceRow{
		ID:           r.db.next("presences"),
		EmployeeID:   record.Employee.ID,
		Date:         dateonly.NewDate(record.Date.Time),
		CheckInTime:  record.CheckInTime,
		CheckOutTime: record.CheckOutTime,
		Status:       string(record.Status),
	}
	r.db.t.presences[row.ID] = row
	return r.toRecord(row), nil
}

func (r *presenceRepositoryImpl) Update(ctx context.Context, record presence.Record) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	row, ok := r.db.t.presences[record.ID]
	if !ok {
		return presence.ErrPresenceNotFound
	}
	row.CheckInTime = record.CheckInTime
	row.CheckOutTime = record.CheckOutTime
	row.Status = string(record.Status)
	r.db.t.presences[row.ID] = row
	return nil
}

