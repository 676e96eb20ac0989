package presence

import (
	"testing"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize_ManagingRoles(t *testing.T) {
	yesterday := dateonly.NewDate(fixedNow.Add(-24 * time.Hour))

	records := []struct {
		name    string
		record  presence.Record
		wantIn  bool
		wantOut bool
	}{
		{"absent", record(1, 99, today, nil, nil), true, false},
		{"arrived", record(1, 99, today, strPtr("08:00:00"), nil), false, true},
		{"left", record(1, 99, today, strPtr("08:00:00"), strPtr("17:00:00")), false, false},
		{"past date other owner", record(1, 99, yesterday, nil, nil), true, false},
		{"check-out without check-in", record(1, 99, today, nil, strPtr("17:00:00")), true, false},
	}

	for _, identity := range []user.Identity{admin, rh, manager} {
		for _, tt := range records {
			t.Run(string(identity.Role)+"/"+tt.name, func(t *testing.T) {
				got := Authorize(identity, tt.record, today)
				assert.Equal(t, tt.wantIn, got.CanCheckIn)
				assert.Equal(t, tt.wantOut, got.CanCheckOut)
				assert.Equal(t, presence.EndpointAdministrative, got.Endpoint)
			})
		}
	}
}

func TestAuthorize_Staff(t *testing.T) {
	yesterday := dateonly.NewDate(fixedNow.Add(-24 * time.Hour))

	tests := []struct {
		name   string
		record presence.Record
		want   presence.ActionPermission
	}{
		{
			name:   "own record today",
			record: record(10, staff.ID, today, nil, nil),
			want:   presence.ActionPermission{CanCheckIn: true, Endpoint: presence.EndpointSelf},
		},
		{
			name:   "own record today after check-in",
			record: record(10, staff.ID, today, strPtr("08:00:00"), nil),
			want:   presence.ActionPermission{CanCheckOut: true, Endpoint: presence.EndpointSelf},
		},
		{
			name:   "own record today after check-out",
			record: record(10, staff.ID, today, strPtr("08:00:00"), strPtr("17:00:00")),
			want:   presence.ActionPermission{Endpoint: presence.EndpointSelf},
		},
		{
			name:   "own record of a past day",
			record: record(10, staff.ID, yesterday, nil, nil),
			want:   presence.ActionPermission{},
		},
		{
			name:   "colleague's record today",
			record: record(11, 8, today, nil, nil),
			want:   presence.ActionPermission{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(staff, tt.record, today))
		})
	}
}

func TestAuthorize_UnknownRoleOrAnonymous(t *testing.T) {
	rec := record(10, 5, today, nil, nil)

	assert.Equal(t, presence.ActionPermission{}, Authorize(user.Identity{ID: 5, Role: "guest"}, rec, today))
	assert.Equal(t, presence.ActionPermission{}, Authorize(user.Identity{}, record(10, 0, today, nil, nil), today))
}

func TestAuthorize_IsPure(t *testing.T) {
	rec := record(10, staff.ID, today, nil, nil)
	first := Authorize(staff, rec, today)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Authorize(staff, rec, today))
	}
}

func TestClock_Today(t *testing.T) {
	assert.True(t, today.SameDay(fixedClk.Today()))

	var nilClock Clock
	assert.True(t, dateonly.NewDate(time.Now()).SameDay(nilClock.Today()))
}
