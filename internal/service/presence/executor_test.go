package presence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_AdminCheckOutWithoutCheckIn(t *testing.T) {
	api := &fakeAPI{}
	exec := NewExecutor(api, staticIdentity{admin})

	rec := record(5, 99, today, nil, nil)
	perm := Authorize(admin, rec, today)
	require.False(t, perm.CanCheckOut)

	out := exec.PerformCheckOut(context.Background(), rec, perm)

	assert.Equal(t, OutcomeNotPermitted, out.Kind)
	assert.Equal(t, "action not permitted", out.Message)
	assert.ErrorIs(t, out.Err, presence.ErrActionNotPermitted)
	assert.Zero(t, api.networkCalls())
}

func TestExecutor_DispatchesByEndpointKind(t *testing.T) {
	api := &fakeAPI{actResp: &client.Response{StatusCode: 200, Data: []byte(`{"success":true,"message":"ok"}`)}}
	exec := NewExecutor(api, staticIdentity{staff})
	ctx := context.Background()

	exec.PerformCheckIn(ctx, record(10, staff.ID, today, nil, nil), presence.ActionPermission{CanCheckIn: true, Endpoint: presence.EndpointSelf})
	exec.PerformCheckOut(ctx, record(11, 99, today, strPtr("08:00:00"), nil), presence.ActionPermission{CanCheckOut: true, Endpoint: presence.EndpointAdministrative})

	assert.Equal(t, []actCall{
		{presence.EndpointSelf, 10, presence.ActionCheckIn},
		{presence.EndpointAdministrative, 11, presence.ActionCheckOut},
	}, api.actCalls)
}

func TestExecutor_InterpretsResponses(t *testing.T) {
	tests := []struct {
		name     string
		resp     *client.Response
		err      error
		action   presence.Action
		wantKind OutcomeKind
		wantMsg  string
	}{
		{
			name:     "explicit success",
			resp:     &client.Response{StatusCode: 200, Data: []byte(`{"success":true,"message":"Pointage enregistré"}`)},
			action:   presence.ActionCheckIn,
			wantKind: OutcomeSuccess,
			wantMsg:  "Pointage enregistré",
		},
		{
			name:     "explicit failure on 200",
			resp:     &client.Response{StatusCode: 200, Data: []byte(`{"success":false,"message":"Arrivée déjà pointée"}`)},
			action:   presence.ActionCheckIn,
			wantKind: OutcomeRejected,
			wantMsg:  "Arrivée déjà pointée",
		},
		{
			name:     "explicit failure on 400",
			resp:     &client.Response{StatusCode: 400, Data: []byte(`{"success":false,"message":"Impossible de pointer la sortie avant l'arrivée"}`)},
			action:   presence.ActionCheckOut,
			wantKind: OutcomeRejected,
			wantMsg:  "Impossible de pointer la sortie avant l'arrivée",
		},
		{
			name:     "explicit failure without message",
			resp:     &client.Response{StatusCode: 400, Data: []byte(`{"success":false}`)},
			action:   presence.ActionCheckOut,
			wantKind: OutcomeRejected,
			wantMsg:  "Erreur lors du pointage de la sortie",
		},
		{
			name:     "non-2xx with structured error",
			resp:     &client.Response{StatusCode: 403, Data: []byte(`{"detail":"Vous n'avez pas la permission"}`)},
			action:   presence.ActionCheckIn,
			wantKind: OutcomeFailed,
			wantMsg:  "Vous n'avez pas la permission",
		},
		{
			name:     "non-2xx without body",
			resp:     &client.Response{StatusCode: 502, Data: []byte(`<html>bad gateway</html>`)},
			action:   presence.ActionCheckIn,
			wantKind: OutcomeFailed,
			wantMsg:  "Erreur lors du pointage de l'arrivée",
		},
		{
			name:     "2xx without success flag",
			resp:     &client.Response{StatusCode: 200, Data: []byte(`{"id":10}`)},
			action:   presence.ActionCheckOut,
			wantKind: OutcomeFailed,
			wantMsg:  "Erreur lors du pointage de la sortie",
		},
		{
			name:     "transport error",
			err:      fmt.Errorf("POST presences/10/arrivee/: %w", errors.New("dial tcp: connection refused")),
			action:   presence.ActionCheckIn,
			wantKind: OutcomeFailed,
			wantMsg:  "Erreur lors du pointage de l'arrivée",
		},
		{
			name:     "session expired",
			err:      fmt.Errorf("POST presences/10/arrivee/: %w", auth.ErrSessionExpired),
			action:   presence.ActionCheckIn,
			wantKind: OutcomeFailed,
			wantMsg:  auth.ErrSessionExpired.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{actResp: tt.resp, actErr: tt.err}
			exec := NewExecutor(api, staticIdentity{admin})

			perm := presence.ActionPermission{CanCheckIn: true, CanCheckOut: true, Endpoint: presence.EndpointAdministrative}
			var out Outcome
			if tt.action == presence.ActionCheckIn {
				out = exec.PerformCheckIn(context.Background(), record(10, 99, today, nil, nil), perm)
			} else {
				out = exec.PerformCheckOut(context.Background(), record(10, 99, today, strPtr("08:00:00"), nil), perm)
			}

			assert.Equal(t, tt.wantKind, out.Kind, out.Kind.String())
			assert.Equal(t, tt.wantMsg, out.Message)
			assert.Equal(t, int64(10), out.RecordID)
			if tt.wantKind == OutcomeSuccess {
				assert.NoError(t, out.Err)
			} else {
				assert.Error(t, out.Err)
			}
		})
	}
}

func TestExecutor_RejectionKeepsAPIError(t *testing.T) {
	api := &fakeAPI{actResp: &client.Response{StatusCode: 400, Data: []byte(`{"success":false,"message":"Sortie déjà pointée"}`)}}
	exec := NewExecutor(api, staticIdentity{admin})

	out := exec.PerformCheckOut(context.Background(), record(3, 99, today, strPtr("08:00:00"), nil),
		presence.ActionPermission{CanCheckOut: true, Endpoint: presence.EndpointAdministrative})

	var apiErr *client.APIError
	require.True(t, errors.As(out.Err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestExecutor_PerRecordGuard(t *testing.T) {
	api := &fakeAPI{
		actResp: &client.Response{StatusCode: 200, Data: []byte(`{"success":true,"message":"ok"}`)},
		block:   make(chan struct{}),
		started: make(chan struct{}, 2),
	}
	exec := NewExecutor(api, staticIdentity{admin})
	perm := presence.ActionPermission{CanCheckIn: true, Endpoint: presence.EndpointAdministrative}
	ctx := context.Background()

	var wg sync.WaitGroup
	var first Outcome
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = exec.PerformCheckIn(ctx, record(1, 99, today, nil, nil), perm)
	}()
	<-api.started

	// Same record while pending
	second := exec.PerformCheckIn(ctx, record(1, 99, today, nil, nil), perm)
	assert.Equal(t, OutcomeBusy, second.Kind)

	// Another record is not blocked by the first one
	wg.Add(1)
	var other Outcome
	go func() {
		defer wg.Done()
		other = exec.PerformCheckIn(ctx, record(2, 99, today, nil, nil), perm)
	}()
	<-api.started

	close(api.block)
	wg.Wait()

	assert.Equal(t, OutcomeSuccess, first.Kind)
	assert.Equal(t, OutcomeSuccess, other.Kind)
	assert.Len(t, api.actCalls, 2)

	// Released after completion
	api.block = nil
	api.started = nil
	third := exec.PerformCheckIn(ctx, record(1, 99, today, nil, nil), perm)
	assert.Equal(t, OutcomeSuccess, third.Kind)
}

func TestExecutor_CreateOwnPresence(t *testing.T) {
	t.Run("staff", func(t *testing.T) {
		api := &fakeAPI{actResp: &client.Response{StatusCode: 201, Data: []byte(`{"success":true,"message":"Présence créée","presence":{"id":12,"date":"2026-10-18","statut":"absent"}}`)}}
		out := NewExecutor(api, staticIdentity{staff}).CreateOwnPresence(context.Background())

		assert.Equal(t, OutcomeSuccess, out.Kind)
		require.NotNil(t, out.Record)
		assert.Equal(t, int64(12), out.Record.ID)
		assert.Equal(t, 1, api.createCalls)
	})

	t.Run("manager is refused locally", func(t *testing.T) {
		api := &fakeAPI{}
		out := NewExecutor(api, staticIdentity{manager}).CreateOwnPresence(context.Background())

		assert.Equal(t, OutcomeNotPermitted, out.Kind)
		assert.ErrorIs(t, out.Err, presence.ErrSelfServiceStaffOnly)
		assert.Zero(t, api.networkCalls())
	})

	t.Run("failure falls back to creation message", func(t *testing.T) {
		api := &fakeAPI{actResp: &client.Response{StatusCode: 500, Data: []byte(`{}`)}}
		out := NewExecutor(api, staticIdentity{staff}).CreateOwnPresence(context.Background())

		assert.Equal(t, OutcomeFailed, out.Kind)
		assert.Equal(t, "Erreur lors de la création de la présence", out.Message)
	})
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "busy", OutcomeBusy.String())
	assert.Equal(t, "OutcomeKind(42)", OutcomeKind(42).String())
}
