package presence

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRecord_JSONWireShape(t *testing.T) {
	body := `{
		"id": 42,
		"employe": {"nom": "Awa Diallo", "user": {"id": 7, "username": "awa"}},
		"date": "2026-10-18",
		"heure_arrivee": "08:02:11",
		"heure_sortie": null,
		"statut": "arrive"
	}`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, int64(42), rec.ID)
	assert.Equal(t, "Awa Diallo", rec.Employee.Name)
	assert.Equal(t, int64(7), rec.OwnerUserID())
	assert.Equal(t, "awa", rec.Employee.User.Username)
	assert.Equal(t, "2026-10-18", rec.Date.String())
	assert.True(t, rec.HasCheckedIn())
	assert.False(t, rec.HasCheckedOut())
	assert.Equal(t, StatusArrived, rec.Status)
}

func TestRecord_EmptyTimestampIsNotACheckIn(t *testing.T) {
	rec := Record{CheckInTime: strPtr(""), CheckOutTime: strPtr("  ")}
	assert.False(t, rec.HasCheckedIn())
	assert.False(t, rec.HasCheckedOut())
}

func TestComputeStats(t *testing.T) {
	t.Run("zero records", func(t *testing.T) {
		assert.Equal(t, AggregateStats{}, ComputeStats(nil))
	})

	t.Run("counts by exact status", func(t *testing.T) {
		records := []Record{
			{Status: StatusArrived},
			{Status: StatusArrived},
			{Status: StatusLeft},
			{Status: StatusAbsent},
			{Status: Status("Arrive")},
		}
		assert.Equal(t, AggregateStats{Total: 5, ArrivedCount: 2, LeftCount: 1, AbsentCount: 1}, ComputeStats(records))
	})
}

func TestFilter(t *testing.T) {
	f := Filter{Date: "2026-10-18", Status: StatusAll, Search: "  awa "}
	require.NoError(t, f.Validate())
	assert.Equal(t, map[string]string{"date": "2026-10-18", "search": "awa"}, f.QueryParams())

	f = Filter{Status: "parti"}
	assert.Equal(t, map[string]string{"statut": "parti"}, f.QueryParams())

	assert.Empty(t, Filter{}.QueryParams())

	bad := Filter{Date: "2026-13-01", Status: "present"}
	assert.Error(t, bad.Validate())
}

func TestActionPermission_Allows(t *testing.T) {
	p := ActionPermission{CanCheckIn: true, Endpoint: EndpointSelf}
	assert.True(t, p.Allows(ActionCheckIn))
	assert.False(t, p.Allows(ActionCheckOut))
	assert.False(t, p.Allows(Action("pause")))
}

func TestIsBusinessRule(t *testing.T) {
	for _, err := range []error{ErrAlreadyCheckedIn, ErrNotCheckedIn, ErrAlreadyCheckedOut, ErrPresenceExists, ErrNoEmployeeProfile} {
		assert.True(t, IsBusinessRule(err), err)
		assert.True(t, IsBusinessRule(fmt.Errorf("apply: %w", err)), err)
	}
	for _, err := range []error{ErrPresenceNotFound, ErrNotOwner, ErrSelfServiceStaffOnly, ErrActionNotPermitted} {
		assert.False(t, IsBusinessRule(err), err)
	}
}
