package presence

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// OwnPresence is a staff member's record for today. A nil Record means no
// presence has been created yet, which is not an error.
type OwnPresence struct {
	Record *presence.Record
}

func (o OwnPresence) Exists() bool {
	return o.Record != nil
}

type Snapshot struct {
	Filter    presence.Filter
	Records   []presence.Record
	Stats     presence.AggregateStats
	Own       OwnPresence
	FetchedAt time.Time
}

// IsEmpty reports the "no presence for these criteria" state.
func (s Snapshot) IsEmpty() bool {
	return len(s.Records) == 0
}

// Reconciler keeps a read-through copy of the server's presence records.
// Every mutation attempt is followed by a Refresh; records are never edited
// locally.
type Reconciler struct {
	api      PresenceAPI
	identity IdentityProvider
	clock    Clock

	mu        sync.RWMutex
	filter    presence.Filter
	records   []presence.Record
	stats     presence.AggregateStats
	own       OwnPresence
	fetchedAt time.Time
}

func NewReconciler(api PresenceAPI, identity IdentityProvider, clock Clock) *Reconciler {
	if clock == nil {
		clock = time.Now
	}
	return &Reconciler{
		api:      api,
		identity: identity,
		clock:    clock,
	}
}

// FetchPresences replaces the record set with the server's answer for filter
// and recomputes the stats. On error the previous set is kept.
func (r *Reconciler) FetchPresences(ctx context.Context, filter presence.Filter) (presence.AggregateStats, error) {
	if err := filter.Validate(); err != nil {
		return presence.AggregateStats{}, err
	}

	records, err := r.api.List(ctx, filter)
	if err != nil {
		return presence.AggregateStats{}, fmt.Errorf("fetch presences: %w", err)
	}
	if records == nil {
		records = []presence.Record{}
	}
	stats := presence.ComputeStats(records)

	r.mu.Lock()
	r.filter = filter
	r.records = records
	r.stats = stats
	r.fetchedAt = r.clock()
	r.mu.Unlock()

	return stats, nil
}

// LoadOwnPresence fetches today's record of a staff identity. Other roles
// get ErrSelfServiceStaffOnly without any request.
func (r *Reconciler) LoadOwnPresence(ctx context.Context) (OwnPresence, error) {
	identity, ok := r.identity.Identity()
	if !ok {
		return OwnPresence{}, auth.ErrNoSession
	}
	if !identity.Can(user.PermissionPresenceSelfService) {
		return OwnPresence{}, presence.ErrSelfServiceStaffOnly
	}

	resp, err := r.api.Own(ctx)
	if err != nil {
		return OwnPresence{}, fmt.Errorf("load own presence: %w", err)
	}

	var own OwnPresence
	if resp.Success && resp.Presence != nil {
		rec := *resp.Presence
		own.Record = &rec
	}

	r.mu.Lock()
	r.own = own
	r.mu.Unlock()

	return own, nil
}

// Refresh re-runs the last filter and, for staff, reloads today's record.
func (r *Reconciler) Refresh(ctx context.Context) error {
	var errs []error

	if _, err := r.FetchPresences(ctx, r.Filter()); err != nil {
		errs = append(errs, err)
	}

	if identity, ok := r.identity.Identity(); ok && identity.Can(user.PermissionPresenceSelfService) {
		if _, err := r.LoadOwnPresence(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (r *Reconciler) Filter() presence.Filter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter
}

func (r *Reconciler) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Filter:    r.filter,
		Records:   slices.Clone(r.records),
		Stats:     r.stats,
		FetchedAt: r.fetchedAt,
	}
	if r.own.Record != nil {
		rec := *r.own.Record
		snap.Own.Record = &rec
	}
	return snap
}

// Record finds a record by id in the current set or in today's own record.
func (r *Reconciler) Record(id int64) (presence.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	if r.own.Record != nil && r.own.Record.ID == id {
		return *r.own.Record, true
	}
	return presence.Record{}, false
}
