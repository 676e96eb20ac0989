package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: 1, Name: "Awa Diallo", Position: "Comptable", UserUsername: "awa", User: &user.Identity{ID: 7, Username: "awa"}, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: 2, Name: "Bakary Traoré", Position: "Technicien", UserUsername: "bakary", Email: strPtr("bakary@gpresence.local"), CreatedAt: now.AddDate(0, -2, 0)},
		{ID: 3, Name: "Chantal Kouassi", Position: "Comptable", UserUsername: "chantal", UserEmail: "chantal@gpresence.local", CreatedAt: now.AddDate(-1, 0, 0)},
	}
}

type fakeEmployeeAPI struct {
	employees []employee.Employee
	err       error
	created   []employee.EmployeeRequest
	deleted   []int64
}

func (f *fakeEmployeeAPI) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeAPI) Create(ctx context.Context, req employee.EmployeeRequest) (employee.Employee, error) {
	f.created = append(f.created, req)
	return employee.Employee{ID: 99, Name: req.Name, Position: req.Position}, f.err
}

func (f *fakeEmployeeAPI) Update(ctx context.Context, id int64, req employee.EmployeeRequest) (employee.Employee, error) {
	return employee.Employee{ID: id, Name: req.Name, Position: req.Position}, f.err
}

func (f *fakeEmployeeAPI) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func TestApply(t *testing.T) {
	employees := sampleEmployees()

	tests := []struct {
		name  string
		query employee.ListQuery
		want  []int64
	}{
		{"no query keeps order", employee.ListQuery{}, []int64{1, 2, 3}},
		{"search by name", employee.ListQuery{Search: "traoré"}, []int64{2}},
		{"search by username", employee.ListQuery{Search: "CHANTAL"}, []int64{3}},
		{"search by email", employee.ListQuery{Search: "bakary@"}, []int64{2}},
		{"position filter", employee.ListQuery{Position: "Comptable"}, []int64{1, 3}},
		{"sort by name desc", employee.ListQuery{SortBy: employee.SortByName, Desc: true}, []int64{3, 2, 1}},
		{"sort by created_at", employee.ListQuery{SortBy: employee.SortByCreatedAt}, []int64{3, 2, 1}},
		{"position and sort", employee.ListQuery{Position: "Comptable", SortBy: employee.SortByUsername, Desc: true}, []int64{3, 1}},
		{"no match", employee.ListQuery{Search: "zzz"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(employees, tt.query)
			ids := make([]int64, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Equal(t, int64(1), employees[0].ID, "input must not be reordered")
}

func TestPositionsAndStats(t *testing.T) {
	employees := sampleEmployees()

	assert.Equal(t, []string{"Comptable", "Technicien"}, Positions(employees))

	stats := ComputeStats(employees, now)
	assert.Equal(t, employee.Stats{Total: 3, Positions: 2, WithEmail: 2, CreatedThisMonth: 1}, stats)

	assert.Equal(t, employee.Stats{}, ComputeStats(nil, now))
	assert.Empty(t, Positions(nil))
}

func TestRosterService_List(t *testing.T) {
	api := &fakeEmployeeAPI{employees: sampleEmployees()}
	svc := NewRosterService(api, func() time.Time { return now })

	roster, err := svc.List(context.Background(), employee.ListQuery{Position: "Technicien"})
	require.NoError(t, err)
	assert.Len(t, roster.Employees, 1)
	assert.Equal(t, 3, roster.Stats.Total)
	assert.Equal(t, []string{"Comptable", "Technicien"}, roster.Positions)

	_, err = svc.List(context.Background(), employee.ListQuery{SortBy: "salaire"})
	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)

	api.err = errors.New("boom")
	_, err = svc.List(context.Background(), employee.ListQuery{})
	assert.ErrorIs(t, err, api.err)
}

func TestRosterService_Mutations(t *testing.T) {
	api := &fakeEmployeeAPI{}
	svc := NewRosterService(api, nil)

	_, err := svc.Create(context.Background(), employee.EmployeeRequest{Name: "", Position: "Technicien"})
	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Empty(t, api.created)

	created, err := svc.Create(context.Background(), employee.EmployeeRequest{Name: "Moussa", Position: "Technicien"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)

	updated, err := svc.Update(context.Background(), 4, employee.EmployeeRequest{Name: "Moussa", Position: "Chef"})
	require.NoError(t, err)
	assert.Equal(t, "Chef", updated.Position)

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Equal(t, []int64{4}, api.deleted)
}
