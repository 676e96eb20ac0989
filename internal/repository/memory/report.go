package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

type reportRepositoryImpl struct {
	db *DB
}

func NewReportRepository(db *DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// toReport joins the row with its author. Callers hold mu.
func (r *reportRepositoryImpl) toReport(row reportRow) report.Report {
	rep := report.Report{
		ID:        row.ID,
		Type:      report.Type(row.Type),
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
	if emp, ok := r.db.t.employees[row.EmployeeID]; ok {
		rep.Author = report.Author{ID: emp.ID, Name: emp.Name}
		if emp.UserID != nil {
			if u, ok := r.db.t.users[*emp.UserID]; ok {
				rep.Author.User = report.AuthorUser{Username: u.Username}
			}
		}
	}
	return rep
}

// List returns the newest reports first. Search matches the content and the
// author's name.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	typ := filter.Type
	if typ == "all" {
		typ = ""
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	reports := make([]report.Report, 0)
	for _, row := range r.db.t.reports {
		if typ != "" && row.Type != typ {
			continue
		}
		rep := r.toReport(row)
		if search != "" &&
			!strings.Contains(strings.ToLower(rep.Content), search) &&
			!strings.Contains(strings.ToLower(rep.Author.Name), search) {
			continue
		}
		reports = append(reports, rep)
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})
	return reports, nil
}

func (r *reportRepositoryImpl) Create(ctx context.Context, authorEmployeeID int64, req report.CreateReportRequest) (report.Report, error) {
	start, err := dateonly.ParseDate(req.StartDate)
	if err != nil {
		return report.Report{}, err
	}
	end, err := dateonly.ParseDate(req.EndDate)
	if err != nil {
		return report.Report{}, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.employees[authorEmployeeID]; !ok {
		return report.Report{}, employee.ErrEmployeeNotFound
	}

	row := reportRow{
		ID:         r.db.next("reports"),
		EmployeeID: authorEmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Content:    req.Content,
		CreatedAt:  r.db.now(),
	}
	r.db.t.reports[row.ID] = row
	return r.toReport(row), nil
}

func (r *reportRepositoryImpl) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.reports[id]; !ok {
		return report.ErrReportNotFound
	}
	delete(r.db.t.reports, id)
	return nil
}
