package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/didacticiel/Gpresence/internal/devapi"
	"github.com/didacticiel/Gpresence/internal/domain/auth"
	"github.com/didacticiel/Gpresence/internal/domain/employee"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/fixtures"
	appHTTP "github.com/didacticiel/Gpresence/internal/handler/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerNow = time.Date(2026, 10, 18, 8, 30, 0, 0, time.UTC)

type apiHarness struct {
	t      *testing.T
	server *devapi.Server
	tokens map[string]string
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	server, _, err := devapi.NewDemo(context.Background(), devapi.Options{
		JWTSecret:        handlerTestSecret,
		AccessExpiration: "1h",
		Router: appHTTP.RouterOptions{
			Env:    "test",
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
		Now: func() time.Time { return handlerNow },
	}, bcrypt.MinCost)
	require.NoError(t, err)

	h := &apiHarness{t: t, server: server, tokens: make(map[string]string)}
	for _, account := range fixtures.DemoAccounts() {
		rec := h.do(http.MethodPost, "/api/users/login/", "", auth.LoginRequest{Identifier: account.Username, Password: fixtures.DemoPassword})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp auth.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		h.tokens[account.Username] = resp.Access
	}
	return h
}

func (h *apiHarness) do(method, path, as string, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+h.tokens[as])
	}
	rec := httptest.NewRecorder()
	h.server.Router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/users/login/", "", auth.LoginRequest{Identifier: "staff", Password: fixtures.DemoPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[auth.LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Access)
	assert.Equal(t, "staff", resp.User.Username)
	assert.Equal(t, "staff", string(resp.User.Role))

	rec = h.do(http.MethodPost, "/api/users/login/", "", auth.LoginRequest{Identifier: "staff", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.ErrInvalidCredentials.Error(), decode[auth.ErrorResponse](t, rec).Error)

	rec = h.do(http.MethodPost, "/api/users/login/", "", auth.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister(t *testing.T) {
	h := newAPIHarness(t)

	req := auth.RegisterRequest{Username: "moussa", Email: "moussa@gpresence.local", Password: "Secret123!", Role: "staff"}
	rec := h.do(http.MethodPost, "/api/users/register/", "", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[auth.RegisterResponse](t, rec).Message)

	rec = h.do(http.MethodPost, "/api/users/register/", "", req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	req.Username, req.Role = "boss", "admin"
	rec = h.do(http.MethodPost, "/api/users/register/", "", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthentication(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/presences/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	h.tokens["forged"] = "eyJhbGciOiJIUzI1NiJ9.e30.invalid"
	rec = h.do(http.MethodGet, "/api/presences/", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSelfServicePresence(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/ma-presence/", "staff", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	own := decode[presence.OwnPresenceResponse](t, rec)
	assert.False(t, own.Success)
	assert.Nil(t, own.Presence)

	rec = h.do(http.MethodPost, "/api/ma-presence/arrivee/", "staff", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	action := decode[presence.ActionResponse](t, rec)
	assert.True(t, action.Success)
	assert.Equal(t, "Arrivée pointée à 08:30:00", action.Message)
	require.NotNil(t, action.Presence)
	assert.Equal(t, presence.StatusArrived, action.Presence.Status)

	rec = h.do(http.MethodPost, "/api/ma-presence/arrivee/", "staff", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	action = decode[presence.ActionResponse](t, rec)
	assert.False(t, action.Success)
	assert.Equal(t, presence.ErrAlreadyCheckedIn.Error(), action.Message)

	rec = h.do(http.MethodPost, "/api/ma-presence/", "staff", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, presence.ErrPresenceExists.Error(), decode[presence.ActionResponse](t, rec).Message)

	rec = h.do(http.MethodGet, "/api/ma-presence/", "admin", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPresenceListScoping(t *testing.T) {
	h := newAPIHarness(t)
	_, err := h.server.TimeClock.OpenDay(context.Background(), presenceDay())
	require.NoError(t, err)

	rec := h.do(http.MethodGet, "/api/presences/?date=2026-10-18&statut=all", "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]presence.Record](t, rec), len(fixtures.DemoAccounts()))

	rec = h.do(http.MethodGet, "/api/presences", "staff", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records := decode[[]presence.Record](t, rec)
	require.Len(t, records, 1)
	assert.Equal(t, "staff", records[0].Employee.User.Username)

	rec = h.do(http.MethodGet, "/api/presences/?statut=present", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdministrativePresenceActions(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/ma-presence/", "staff", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[presence.ActionResponse](t, rec)
	require.NotNil(t, created.Presence)
	path := "/api/presences/" + itoa(created.Presence.ID)

	rec = h.do(http.MethodPost, path+"/sortie/", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, presence.ErrNotCheckedIn.Error(), decode[presence.ActionResponse](t, rec).Message)

	rec = h.do(http.MethodPost, path+"/arrivee/", "staff", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, path+"/arrivee/", "rh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[presence.ActionResponse](t, rec).Success)

	rec = h.do(http.MethodPost, path+"/sortie/", "manager", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, presence.StatusLeft, decode[presence.ActionResponse](t, rec).Presence.Status)

	rec = h.do(http.MethodPost, "/api/presences/999/arrivee/", "admin", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodPost, "/api/presences/abc/arrivee/", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployees(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/api/employes/", "staff", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/employes/", "rh", employee.EmployeeRequest{Name: "Moussa Sow", Position: "Technicien", Phone: "0102030405"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[employee.Employee](t, rec)

	rec = h.do(http.MethodPut, "/api/employes/"+itoa(created.ID)+"/", "admin", employee.EmployeeRequest{Name: "Moussa Sow", Position: "Chef technicien"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chef technicien", decode[employee.Employee](t, rec).Position)

	rec = h.do(http.MethodPost, "/api/employes/", "manager", employee.EmployeeRequest{Name: "X", Position: "Y"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/employes/", "rh", employee.EmployeeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/employes/", "rh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]employee.Employee](t, rec), len(fixtures.DemoAccounts())+1)

	rec = h.do(http.MethodDelete, "/api/employes/"+itoa(created.ID)+"/", "rh", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.do(http.MethodDelete, "/api/employes/"+itoa(created.ID)+"/", "rh", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReports(t *testing.T) {
	h := newAPIHarness(t)

	req := report.CreateReportRequest{Type: "mensuel", StartDate: "2026-09-01", EndDate: "2026-09-30", Content: "Bilan septembre"}

	rec := h.do(http.MethodPost, "/api/rapports/", "staff", req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/rapports/", "manager", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[report.Report](t, rec)
	assert.Equal(t, "manager", created.Author.User.Username)

	bad := req
	bad.EndDate = "2026-08-01"
	rec = h.do(http.MethodPost, "/api/rapports/", "manager", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, "/api/rapports/?type=mensuel&search=bilan", "rh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]report.Report](t, rec), 1)

	rec = h.do(http.MethodDelete, "/api/rapports/"+itoa(created.ID)+"/", "admin", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestIDAndHeartbeat(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = h.do(http.MethodGet, "/api/unknown/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
