// Package employee backs the employees screen: it fetches the directory
// from the API and searches, filters and sorts it locally.
package employee

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
)

// EmployeeAPI is implemented by *client.EmployeeEndpoint.
type EmployeeAPI interface {
	List(ctx context.Context) ([]employee.Employee, error)
	Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error)
	Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type RosterService struct {
	api EmployeeAPI
	now func() time.Time
}

func NewRosterService(api EmployeeAPI, now func() time.Time) *RosterService {
	if now == nil {
		now = time.Now
	}
	return &RosterService{api: api, now: now}
}

// Roster is one fetch of the directory with the query applied.
type Roster struct {
	Employees []employee.Employee `json:"employes" yaml:"employes"`
	Positions []string            `json:"postes" yaml:"postes"`
	Stats     employee.Stats      `json:"stats" yaml:"stats"`
}

// List fetches every employee, then narrows and orders them with q. Stats and
// Positions describe the whole directory, not the filtered view.
func (s *RosterService) List(ctx context.Context, q employee.ListQuery) (Roster, error) {
	if err := q.Validate(); err != nil {
		return Roster{}, err
	}

	all, err := s.api.List(ctx)
	if err != nil {
		return Roster{}, fmt.Errorf("failed to fetch employees: %w", err)
	}

	return Roster{
		Employees: Apply(all, q),
		Positions: Positions(all),
		Stats:     ComputeStats(all, s.now()),
	}, nil
}

func (s *RosterService) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.api.Create(ctx, req)
}

func (s *RosterService) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.api.Update(ctx, id, req)
}

func (s *RosterService) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, id)
}

// Apply filters by search text and position, then sorts. The input is not
// modified.
func Apply(employees []employee.Employee, q employee.ListQuery) []employee.Employee {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if q.Position != "" && e.Position != q.Position {
			continue
		}
		if search != "" && !matches(e, search) {
			continue
		}
		out = append(out, e)
	}

	if q.SortBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.Desc {
				return less(out[j], out[i], q.SortBy)
			}
			return less(out[i], out[j], q.SortBy)
		})
	}
	return out
}

func matches(e employee.Employee, search string) bool {
	fields := []string{e.Name, e.Position, e.UserUsername, e.ContactEmail()}
	if e.User != nil {
		fields = append(fields, e.User.Username, e.User.Email)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func less(a, b employee.Employee, field employee.SortField) bool {
	switch field {
	case employee.SortByPosition:
		return strings.ToLower(a.Position) < strings.ToLower(b.Position)
	case employee.SortByUsername:
		return strings.ToLower(a.UserUsername) < strings.ToLower(b.UserUsername)
	case employee.SortByCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// Positions returns the distinct positions, sorted.
func Positions(employees []employee.Employee) []string {
	seen := make(map[string]struct{})
	positions := []string{}
	for _, e := range employees {
		if e.Position == "" {
			continue
		}
		if _, ok := seen[e.Position]; ok {
			continue
		}
		seen[e.Position] = struct{}{}
		positions = append(positions, e.Position)
	}
	sort.Strings(positions)
	return positions
}

func ComputeStats(employees []employee.Employee, now time.Time) employee.Stats {
	stats := employee.Stats{
		Total:     len(employees),
		Positions: len(Positions(employees)),
	}
	y, m, _ := now.Date()
	for _, e := range employees {
		if e.ContactEmail() != "" {
			stats.WithEmail++
		}
		cy, cm, _ := e.CreatedAt.Date()
		if cy == y && cm == m {
			stats.CreatedThisMonth++
		}
	}
	return stats
}
