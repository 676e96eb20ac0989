package presence

import (
	"context"
	"errors"
	"log/slog"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// Card is a record with the actions the current identity may take on it.
type Card struct {
	Record     presence.Record
	Permission presence.ActionPermission
}

// Board ties the workflow together: look the record up, authorize, execute,
// notify, then resync with the server whatever happened.
type Board struct {
	reconciler *Reconciler
	executor   *Executor
	identity   IdentityProvider
	notifier   Notifier
	clock      Clock
}

func NewBoard(api PresenceAPI, identity IdentityProvider, notifier Notifier, clock Clock) *Board {
	if notifier == nil {
		notifier = NewLogNotifier(nil)
	}
	return &Board{
		reconciler: NewReconciler(api, identity, clock),
		executor:   NewExecutor(api, identity),
		identity:   identity,
		notifier:   notifier,
		clock:      clock,
	}
}

func (b *Board) Reconciler() *Reconciler {
	return b.reconciler
}

// Load fetches the list for filter and, for staff, today's own record.
func (b *Board) Load(ctx context.Context, filter presence.Filter) (Snapshot, error) {
	if _, err := b.reconciler.FetchPresences(ctx, filter); err != nil {
		return b.reconciler.Snapshot(), err
	}
	if identity, ok := b.identity.Identity(); ok && identity.Can(user.PermissionPresenceSelfService) {
		if _, err := b.reconciler.LoadOwnPresence(ctx); err != nil {
			return b.reconciler.Snapshot(), err
		}
	}
	return b.reconciler.Snapshot(), nil
}

// Cards authorizes every record of the current snapshot.
func (b *Board) Cards() []Card {
	identity, _ := b.identity.Identity()
	today := b.clock.Today()

	snap := b.reconciler.Snapshot()
	cards := make([]Card, 0, len(snap.Records))
	for _, rec := range snap.Records {
		cards = append(cards, Card{Record: rec, Permission: Authorize(identity, rec, today)})
	}
	return cards
}

// OwnCard returns today's record of a staff member, if one exists.
func (b *Board) OwnCard() (Card, bool) {
	identity, _ := b.identity.Identity()
	own := b.reconciler.Snapshot().Own
	if !own.Exists() {
		return Card{}, false
	}
	return Card{Record: *own.Record, Permission: Authorize(identity, *own.Record, b.clock.Today())}, true
}

func (b *Board) CheckIn(ctx context.Context, recordID int64) Outcome {
	return b.act(ctx, recordID, presence.ActionCheckIn)
}

func (b *Board) CheckOut(ctx context.Context, recordID int64) Outcome {
	return b.act(ctx, recordID, presence.ActionCheckOut)
}

// CreateOwn creates today's record for the calling staff member.
func (b *Board) CreateOwn(ctx context.Context) Outcome {
	outcome := b.executor.CreateOwnPresence(ctx)
	b.finish(ctx, outcome)
	return outcome
}

func (b *Board) act(ctx context.Context, recordID int64, action presence.Action) Outcome {
	outcome := b.dispatch(ctx, recordID, action)
	b.finish(ctx, outcome)
	return outcome
}

func (b *Board) dispatch(ctx context.Context, recordID int64, action presence.Action) Outcome {
	identity, ok := b.identity.Identity()
	if !ok {
		return Outcome{
			Kind:     OutcomeNotPermitted,
			Action:   string(action),
			RecordID: recordID,
			Message:  auth.ErrNoSession.Error(),
			Err:      auth.ErrNoSession,
		}
	}

	record, found := b.reconciler.Record(recordID)
	if !found {
		return Outcome{
			Kind:     OutcomeFailed,
			Action:   string(action),
			RecordID: recordID,
			Message:  "Présence introuvable",
			Err:      presence.ErrPresenceNotFound,
		}
	}

	permission := Authorize(identity, record, b.clock.Today())
	if action == presence.ActionCheckOut {
		return b.executor.PerformCheckOut(ctx, record, permission)
	}
	return b.executor.PerformCheckIn(ctx, record, permission)
}

func (b *Board) finish(ctx context.Context, outcome Outcome) {
	b.notifier.Notify(ctx, outcome)

	if err := b.reconciler.Refresh(ctx); err != nil && !errors.Is(err, auth.ErrNoSession) {
		slog.Warn("presence refresh failed", "error", err)
	}
}
