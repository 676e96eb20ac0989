package presence_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/devapi"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/fixtures"
	appHTTP "github.com/didacticiel/Gpresence/internal/handler/http"
	"github.com/didacticiel/Gpresence/internal/pkg/dateonly"
	servicePresence "github.com/didacticiel/Gpresence/internal/service/presence"
	"github.com/didacticiel/Gpresence/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var rtNow = time.Date(2026, 10, 18, 8, 30, 0, 0, time.UTC)

func rtClock() time.Time { return rtNow }

type roundTrip struct {
	t      *testing.T
	server *devapi.Server
	url    string
}

func newRoundTrip(t *testing.T) *roundTrip {
	t.Helper()
	server, _, err := devapi.NewDemo(context.Background(), devapi.Options{
		JWTSecret:        "test-secret-key-for-jwt",
		AccessExpiration: "1h",
		Router:           appHTTP.RouterOptions{Env: "test", Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Now:              rtClock,
	}, bcrypt.MinCost)
	require.NoError(t, err)

	srv := httptest.NewServer(server.Router)
	t.Cleanup(srv.Close)
	return &roundTrip{t: t, server: server, url: srv.URL + "/api/"}
}

// login returns a client and a board for a fresh session of username.
func (rt *roundTrip) login(username, password string) (*client.Client, *session.Session, *servicePresence.Board) {
	rt.t.Helper()
	sess := session.New(session.NewMemoryStore())
	c := client.New(rt.url, 2*time.Second, sess)

	resp, err := c.Users.Login(context.Background(), auth.LoginRequest{Identifier: username, Password: password})
	require.NoError(rt.t, err)
	require.NoError(rt.t, sess.Start(resp.Access, resp.User))

	board := servicePresence.NewBoard(c.Presences, sess, servicePresence.NewLogNotifier(slog.New(slog.NewTextHandler(io.Discard, nil))), rtClock)
	return c, sess, board
}

func (rt *roundTrip) register(username string) {
	rt.t.Helper()
	c := client.New(rt.url, 2*time.Second, session.New(session.NewMemoryStore()))
	_, err := c.Users.Register(context.Background(), auth.RegisterRequest{
		Username: username,
		Email:    username + "@gpresence.local",
		Password: "Secret123!",
		Role:     "staff",
	})
	require.NoError(rt.t, err)
}

func (rt *roundTrip) openToday() {
	rt.t.Helper()
	_, err := rt.server.TimeClock.OpenDay(context.Background(), dateonly.NewDate(rtNow))
	require.NoError(rt.t, err)
}

// The demo accounts take ids 1 to 4, so the third registration is user 7.
func TestRoundTrip_StaffSevenChecksIn(t *testing.T) {
	rt := newRoundTrip(t)
	rt.register("moussa")
	rt.register("fatou")
	rt.register("awa")
	rt.openToday()

	_, sess, board := rt.login("awa", "Secret123!")
	identity, err := sess.Require()
	require.NoError(t, err)
	require.Equal(t, int64(7), identity.ID)

	snap, err := board.Load(context.Background(), presence.Filter{})
	require.NoError(t, err)
	require.Len(t, snap.Records, 1)
	require.True(t, snap.Own.Exists())

	cards := board.Cards()
	require.Len(t, cards, 1)
	card := cards[0]
	assert.Equal(t, int64(7), card.Record.OwnerUserID())
	assert.Nil(t, card.Record.CheckInTime)
	assert.Equal(t, presence.ActionPermission{CanCheckIn: true, Endpoint: presence.EndpointSelf}, card.Permission)

	outcome := board.CheckIn(context.Background(), card.Record.ID)
	require.Equal(t, servicePresence.OutcomeSuccess, outcome.Kind, outcome.Message)
	assert.Equal(t, "Arrivée pointée à 08:30:00", outcome.Message)

	snap = board.Reconciler().Snapshot()
	require.Len(t, snap.Records, 1)
	assert.Equal(t, presence.StatusArrived, snap.Records[0].Status)
	assert.Equal(t, 1, snap.Stats.ArrivedCount)
	require.True(t, snap.Own.Exists())
	assert.Equal(t, "08:30:00", *snap.Own.Record.CheckInTime)

	again := board.CheckIn(context.Background(), card.Record.ID)
	assert.Equal(t, servicePresence.OutcomeNotPermitted, again.Kind)

	out := board.CheckOut(context.Background(), card.Record.ID)
	require.Equal(t, servicePresence.OutcomeSuccess, out.Kind, out.Message)
	assert.Equal(t, presence.StatusLeft, board.Reconciler().Snapshot().Records[0].Status)
}

func TestRoundTrip_StaffCreatesOwnPresence(t *testing.T) {
	rt := newRoundTrip(t)
	_, _, board := rt.login("staff", fixtures.DemoPassword)

	snap, err := board.Load(context.Background(), presence.Filter{})
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.False(t, snap.Own.Exists())

	outcome := board.CreateOwn(context.Background())
	require.Equal(t, servicePresence.OutcomeSuccess, outcome.Kind, outcome.Message)

	own, ok := board.OwnCard()
	require.True(t, ok)
	assert.Equal(t, presence.StatusAbsent, own.Record.Status)
	assert.True(t, own.Permission.CanCheckIn)

	again := board.CreateOwn(context.Background())
	assert.Equal(t, servicePresence.OutcomeRejected, again.Kind)
	assert.Equal(t, presence.ErrPresenceExists.Error(), again.Message)
}

func TestRoundTrip_AdminCheckOutWithoutCheckInStaysLocal(t *testing.T) {
	rt := newRoundTrip(t)
	rt.openToday()
	_, _, board := rt.login("admin", fixtures.DemoPassword)

	snap, err := board.Load(context.Background(), presence.Filter{Date: "2026-10-18"})
	require.NoError(t, err)
	require.Len(t, snap.Records, len(fixtures.DemoAccounts()))
	assert.Equal(t, len(fixtures.DemoAccounts()), snap.Stats.AbsentCount)

	target := snap.Records[0]
	outcome := board.CheckOut(context.Background(), target.ID)
	assert.Equal(t, servicePresence.OutcomeNotPermitted, outcome.Kind)

	rec, ok := board.Reconciler().Record(target.ID)
	require.True(t, ok)
	assert.Equal(t, presence.StatusAbsent, rec.Status)

	checkIn := board.CheckIn(context.Background(), target.ID)
	require.Equal(t, servicePresence.OutcomeSuccess, checkIn.Kind, checkIn.Message)
	assert.Equal(t, 1, board.Reconciler().Snapshot().Stats.ArrivedCount)
}

func TestRoundTrip_FetchIsIdempotent(t *testing.T) {
	rt := newRoundTrip(t)
	rt.openToday()
	_, _, board := rt.login("manager", fixtures.DemoPassword)

	first, err := board.Load(context.Background(), presence.Filter{Status: "all"})
	require.NoError(t, err)
	second, err := board.Load(context.Background(), presence.Filter{Status: "all"})
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestRoundTrip_EmptyResultHasZeroStats(t *testing.T) {
	rt := newRoundTrip(t)
	_, _, board := rt.login("rh", fixtures.DemoPassword)

	snap, err := board.Load(context.Background(), presence.Filter{Date: "2020-01-01"})
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, presence.AggregateStats{}, snap.Stats)
}

func TestRoundTrip_RejectedTokenEndsSession(t *testing.T) {
	rt := newRoundTrip(t)
	_, sess, board := rt.login("manager", fixtures.DemoPassword)

	identity, err := sess.Require()
	require.NoError(t, err)

	invalidated := 0
	sess.OnInvalidate(func() { invalidated++ })
	require.NoError(t, sess.Start("not-a-valid-token", identity))

	_, err = board.Load(context.Background(), presence.Filter{})
	require.ErrorIs(t, err, auth.ErrSessionExpired)
	assert.Equal(t, 1, invalidated)

	_, err = sess.Require()
	assert.ErrorIs(t, err, auth.ErrNoSession)
}
