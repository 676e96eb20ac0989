package presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

type OutcomeKind int

const (
	// OutcomeSuccess: the server answered success=true.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRejected: the server answered success=false with its reason.
	OutcomeRejected
	// OutcomeFailed: transport error, unexpected status or malformed body.
	OutcomeFailed
	// OutcomeNotPermitted: refused locally, nothing was sent.
	OutcomeNotPermitted
	// OutcomeBusy: an action on the same record is still pending.
	OutcomeBusy
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeNotPermitted:
		return "not_permitted"
	case OutcomeBusy:
		return "busy"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of one presence mutation attempt.
type Outcome struct {
	Kind     OutcomeKind
	Action   string
	RecordID int64
	Message  string
	Record   *presence.Record
	Err      error
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

const (
	actionCreate = "creation"

	msgCheckInFailed  = "Erreur lors du pointage de l'arrivée"
	msgCheckOutFailed = "Erreur lors du pointage de la sortie"
	msgCreateFailed   = "Erreur lors de la création de la présence"
	msgBusy           = "Une action est déjà en cours pour cette présence"
)

// ownRecordKey guards CreateOwnPresence, which has no record id yet.
const ownRecordKey int64 = 0

// Executor sends permitted presence mutations and classifies the answer.
type Executor struct {
	api      PresenceAPI
	identity IdentityProvider

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewExecutor(api PresenceAPI, identity IdentityProvider) *Executor {
	return &Executor{
		api:      api,
		identity: identity,
		inFlight: make(map[int64]struct{}),
	}
}

func (e *Executor) PerformCheckIn(ctx context.Context, record presence.Record, permission presence.ActionPermission) Outcome {
	return e.perform(ctx, record, permission, presence.ActionCheckIn)
}

func (e *Executor) PerformCheckOut(ctx context.Context, record presence.Record, permission presence.ActionPermission) Outcome {
	return e.perform(ctx, record, permission, presence.ActionCheckOut)
}

func (e *Executor) perform(ctx context.Context, record presence.Record, permission presence.ActionPermission, action presence.Action) Outcome {
	base := Outcome{Action: string(action), RecordID: record.ID}

	if !permission.Allows(action) {
		base.Kind = OutcomeNotPermitted
		base.Message = presence.ErrActionNotPermitted.Error()
		base.Err = presence.ErrActionNotPermitted
		return base
	}

	if !e.acquire(record.ID) {
		base.Kind = OutcomeBusy
		base.Message = msgBusy
		return base
	}
	defer e.release(record.ID)

	fallback := msgCheckInFailed
	if action == presence.ActionCheckOut {
		fallback = msgCheckOutFailed
	}

	resp, err := e.api.Act(ctx, permission.Endpoint, record.ID, action)
	return interpret(base, resp, err, fallback)
}

// CreateOwnPresence creates today's record of the calling staff member.
func (e *Executor) CreateOwnPresence(ctx context.Context) Outcome {
	base := Outcome{Action: actionCreate}

	identity, ok := e.identity.Identity()
	if !ok {
		base.Kind = OutcomeNotPermitted
		base.Message = auth.ErrNoSession.Error()
		base.Err = auth.ErrNoSession
		return base
	}
	if !identity.Can(user.PermissionPresenceSelfService) {
		base.Kind = OutcomeNotPermitted
		base.Message = presence.ErrSelfServiceStaffOnly.Error()
		base.Err = presence.ErrSelfServiceStaffOnly
		return base
	}

	if !e.acquire(ownRecordKey) {
		base.Kind = OutcomeBusy
		base.Message = msgBusy
		return base
	}
	defer e.release(ownRecordKey)

	resp, err := e.api.CreateOwn(ctx)
	return interpret(base, resp, err, msgCreateFailed)
}

// interpret applies the envelope rules: a success flag decides on its own,
// whatever the status code. Anything else is a failure carrying the best
// message available.
func interpret(out Outcome, resp *client.Response, err error, fallback string) Outcome {
	if err == nil && resp == nil {
		err = errors.New("no response")
	}
	if err != nil {
		out.Kind = OutcomeFailed
		out.Err = err
		out.Message = fallback
		if errors.Is(err, auth.ErrSessionExpired) {
			out.Message = auth.ErrSessionExpired.Error()
		}
		slog.Error("presence action failed", "action", out.Action, "record_id", out.RecordID, "error", err)
		return out
	}

	env, perr := client.ParseEnvelope(resp.Data)
	if perr == nil && env.Success != nil {
		out.Message = env.Message
		out.Record = env.Presence
		if *env.Success {
			out.Kind = OutcomeSuccess
			return out
		}
		out.Kind = OutcomeRejected
		if out.Message == "" {
			out.Message = fallback
		}
		out.Err = &client.APIError{StatusCode: resp.StatusCode, Message: out.Message, Body: resp.Data}
		return out
	}

	out.Kind = OutcomeFailed
	out.Message = client.ExtractMessage(resp.Data)
	if out.Message == "" {
		out.Message = fallback
	}
	if resp.OK() {
		out.Err = fmt.Errorf("unexpected response body: %w", errors.Join(errMissingSuccessFlag, perr))
	} else {
		out.Err = &client.APIError{StatusCode: resp.StatusCode, Message: out.Message, Body: resp.Data}
	}
	slog.Error("presence action failed",
		"action", out.Action,
		"record_id", out.RecordID,
		"status", resp.StatusCode,
		"error", out.Err,
	)
	return out
}

var errMissingSuccessFlag = errors.New("missing success flag")

func (e *Executor) acquire(id int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[id]; busy {
		return false
	}
	e.inFlight[id] = struct{}{}
	return true
}

func (e *Executor) release(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight, id)
}
