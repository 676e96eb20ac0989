package presence

import (
	"strings"

	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// Status is the server's vocabulary for a day's attendance.
type Status string

const (
	StatusArrived Status = "arrive"
	StatusLeft    Status = "parti"
	StatusAbsent  Status = "absent"
)

// StatusAll is the filter value meaning "no status filter".
const StatusAll = "all"

var Statuses = []Status{StatusArrived, StatusLeft, StatusAbsent}

func (s Status) IsValid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Label is the name shown to users. Unknown statuses are shown as sent.
func (s Status) Label() string {
	switch s {
	case StatusArrived:
		return "Arrivé"
	case StatusLeft:
		return "Parti"
	case StatusAbsent:
		return "Absent"
	}
	return string(s)
}

// Record is one employee's attendance for one day. The server owns it:
// clients never originate an id nor derive a status from the timestamps.
type Record struct {
	ID           int64         `json:"id"`
	Employee     EmployeeRef   `json:"employe"`
	Date         dateonly.Date `json:"date"`
	CheckInTime  *string       `json:"heure_arrivee"`
	CheckOutTime *string       `json:"heure_sortie"`
	Status       Status        `json:"statut"`
}

type EmployeeRef struct {
	ID   int64   `json:"id,omitempty"`
	Name string  `json:"nom"`
	User UserRef `json:"user"`
}

type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// OwnerUserID is the id of the user account the record belongs to.
func (r Record) OwnerUserID() int64 {
	return r.Employee.User.ID
}

func (r Record) HasCheckedIn() bool {
	return r.CheckInTime != nil && strings.TrimSpace(*r.CheckInTime) != ""
}

func (r Record) HasCheckedOut() bool {
	return r.CheckOutTime != nil && strings.TrimSpace(*r.CheckOutTime) != ""
}

// AggregateStats counts records per server status.
type AggregateStats struct {
	Total        int `json:"total"`
	ArrivedCount int `json:"arrive"`
	LeftCount    int `json:"parti"`
	AbsentCount  int `json:"absent"`
}

// ComputeStats counts by exact status match. Unknown statuses only count
// towards the total.
func ComputeStats(records []Record) AggregateStats {
	stats := AggregateStats{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusArrived:
			stats.ArrivedCount++
		case StatusLeft:
			stats.LeftCount++
		case StatusAbsent:
			stats.AbsentCount++
		}
	}
	return stats
}

// Action is a presence transition, named after its URL segment.
type Action string

const (
	ActionCheckIn  Action = "arrivee"
	ActionCheckOut Action = "sortie"
)

// EndpointKind selects which URL shape performs an action.
type EndpointKind string

const (
	EndpointNone           EndpointKind = ""
	EndpointSelf           EndpointKind = "self"
	EndpointAdministrative EndpointKind = "administrative"
)

// ActionPermission is derived for every render from identity, record and
// today. It is never stored.
type ActionPermission struct {
	CanCheckIn  bool         `json:"can_check_in"`
	CanCheckOut bool         `json:"can_check_out"`
	Endpoint    EndpointKind `json:"endpoint,omitempty"`
}

func (p ActionPermission) Allows(action Action) bool {
	switch action {
	case ActionCheckIn:
		return p.CanCheckIn
	case ActionCheckOut:
		return p.CanCheckOut
	}
	return false
}
