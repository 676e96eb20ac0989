package presence

import (
	"context"
	"sync"
	"time"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
)

var (
	fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	today    = dateonly.NewDate(fixedNow)
	fixedClk = Clock(func() time.Time { return fixedNow })

	admin   = user.Identity{ID: 1, Username: "admin", Role: user.RoleAdmin}
	rh      = user.Identity{ID: 2, Username: "rh", Role: user.RoleRH}
	manager = user.Identity{ID: 3, Username: "manager", Role: user.RoleManager}
	staff   = user.Identity{ID: 7, Username: "awa", Role: user.RoleStaff}
)

func strPtr(s string) *string { return &s }

func record(id, owner int64, date dateonly.Date, in, out *string) presence.Record {
	status := presence.StatusAbsent
	switch {
	case in != nil && out != nil:
		status = presence.StatusLeft
	case in != nil:
		status = presence.StatusArrived
	}
	return presence.Record{
		ID:           id,
		Employee:     presence.EmployeeRef{Name: "Employé", User: presence.UserRef{ID: owner}},
		Date:         date,
		CheckInTime:  in,
		CheckOutTime: out,
		Status:       status,
	}
}

type staticIdentity struct {
	identity user.Identity
}

func (s staticIdentity) Identity() (user.Identity, bool) {
	return s.identity, !s.identity.IsZero()
}

type actCall struct {
	endpoint presence.EndpointKind
	recordID int64
	action   presence.Action
}

// fakeAPI records every call. When block is set, Act waits on it.
type fakeAPI struct {
	mu sync.Mutex

	records []presence.Record
	listErr error
	own     presence.OwnPresenceResponse
	ownErr  error

	actResp *client.Response
	actErr  error
	block   chan struct{}
	started chan struct{}

	listCalls   int
	ownCalls    int
	createCalls int
	actCalls    []actCall
}

func (f *fakeAPI) List(_ context.Context, _ presence.Filter) ([]presence.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]presence.Record(nil), f.records...), nil
}

func (f *fakeAPI) Own(_ context.Context) (presence.OwnPresenceResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ownCalls++
	return f.own, f.ownErr
}

func (f *fakeAPI) CreateOwn(_ context.Context) (*client.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	return f.actResp, f.actErr
}

func (f *fakeAPI) Act(_ context.Context, endpoint presence.EndpointKind, recordID int64, action presence.Action) (*client.Response, error) {
	f.mu.Lock()
	f.actCalls = append(f.actCalls, actCall{endpoint, recordID, action})
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actResp, f.actErr
}

func (f *fakeAPI) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.ownCalls + f.createCalls + len(f.actCalls)
}
