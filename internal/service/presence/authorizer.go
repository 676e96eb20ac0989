package presence

import (
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

// Clock returns the current time. Today is derived from it.
type Clock func() time.Time

func (c Clock) Today() dateonly.Date {
	if c == nil {
		return dateonly.NewDate(time.Now())
	}
	return dateonly.NewDate(c())
}

// Authorize decides which actions identity may take on record today.
// Managing roles act on any record through the administrative endpoint.
// Staff act only on their own record of the day, through the self-service
// endpoint. Either way a check-in is offered until one is recorded and a
// check-out only between check-in and check-out.
func Authorize(identity user.Identity, record presence.Record, today dateonly.Date) presence.ActionPermission {
	switch {
	case identity.Can(user.PermissionPresenceManage):
		return gate(record, presence.EndpointAdministrative)

	case identity.Can(user.PermissionPresenceSelfService):
		if identity.ID != 0 && record.OwnerUserID() == identity.ID && record.Date.SameDay(today) {
			return gate(record, presence.EndpointSelf)
		}
	}

	return presence.ActionPermission{}
}

func gate(record presence.Record, endpoint presence.EndpointKind) presence.ActionPermission {
	return presence.ActionPermission{
		CanCheckIn:  !record.HasCheckedIn(),
		CanCheckOut: record.HasCheckedIn() && !record.HasCheckedOut(),
		Endpoint:    endpoint,
	}
}
