package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
)

const (
	msgPresenceCreated = "Présence du jour créée"
	msgNoPresenceToday = "Aucune présence enregistrée aujourd'hui"
)

type PresenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetOwn(w http.ResponseWriter, r *http.Request)
	CreateOwn(w http.ResponseWriter, r *http.Request)
	CheckInOwn(w http.ResponseWriter, r *http.Request)
	CheckOutOwn(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
}

type PresenceHandlerImpl struct {
	timeClock presence.TimeClock
}

func NewPresenceHandler(timeClock presence.TimeClock) PresenceHandler {
	return &PresenceHandlerImpl{timeClock: timeClock}
}

// List implements PresenceHandler: GET /presences/?date&statut&search.
func (h *PresenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := presence.Filter{
		Date:   query.Get("date"),
		Status: query.Get("statut"),
		Search: query.Get("search"),
	}

	records, err := h.timeClock.List(r.Context(), identity, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, records)
}

// GetOwn implements PresenceHandler. No record yet is not an error: it
// answers {success:false}.
func (h *PresenceHandlerImpl) GetOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	record, err := h.timeClock.GetOwn(r.Context(), identity)
	if err != nil {
		if errors.Is(err, presence.ErrPresenceNotFound) {
			response.JSON(w, http.StatusOK, presence.OwnPresenceResponse{Success: false, Message: msgNoPresenceToday})
			return
		}
		h.fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, presence.OwnPresenceResponse{Success: true, Presence: &record})
}

// CreateOwn implements PresenceHandler.
func (h *PresenceHandlerImpl) CreateOwn(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	record, err := h.timeClock.CreateOwn(r.Context(), identity)
	if err != nil {
		h.fail(w, err)
		return
	}
	slog.Info("Presence created", "user_id", identity.ID, "presence_id", record.ID)
	response.JSON(w, http.StatusCreated, presence.ActionResponse{Success: true, Message: msgPresenceCreated, Presence: &record})
}

func (h *PresenceHandlerImpl) CheckInOwn(w http.ResponseWriter, r *http.Request) {
	h.performOwn(w, r, presence.ActionCheckIn)
}

func (h *PresenceHandlerImpl) CheckOutOwn(w http.ResponseWriter, r *http.Request) {
	h.performOwn(w, r, presence.ActionCheckOut)
}

func (h *PresenceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, presence.ActionCheckIn)
}

func (h *PresenceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.perform(w, r, presence.ActionCheckOut)
}

func (h *PresenceHandlerImpl) performOwn(w http.ResponseWriter, r *http.Request, action presence.Action) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	record, err := h.timeClock.PerformOwn(r.Context(), identity, action)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.done(w, action, record)
}

func (h *PresenceHandlerImpl) perform(w http.ResponseWriter, r *http.Request, action presence.Action) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	record, err := h.timeClock.Perform(r.Context(), identity, id, action)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.done(w, action, record)
}

func (h *PresenceHandlerImpl) done(w http.ResponseWriter, action presence.Action, record presence.Record) {
	var message string
	switch action {
	case presence.ActionCheckIn:
		message = fmt.Sprintf("Arrivée pointée à %s", *record.CheckInTime)
	case presence.ActionCheckOut:
		message = fmt.Sprintf("Sortie pointée à %s", *record.CheckOutTime)
	}
	slog.Info("Presence updated", "presence_id", record.ID, "action", action, "statut", record.Status)
	response.JSON(w, http.StatusOK, presence.ActionResponse{Success: true, Message: message, Presence: &record})
}

// fail answers rule violations with the presence envelope and everything
// else with the generic error mapping.
func (h *PresenceHandlerImpl) fail(w http.ResponseWriter, err error) {
	if presence.IsBusinessRule(err) {
		response.JSON(w, http.StatusBadRequest, presence.ActionResponse{Success: false, Message: err.Error()})
		return
	}
	response.HandleError(w, err)
}
