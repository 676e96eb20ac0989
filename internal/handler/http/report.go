package http

import (
	"log/slog"
	"net/http"

	"github.com/didacticiel/Gpresence/internal/domain/report"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
)

type ReportHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// List implements ReportHandler: GET /rapports/?type&search.
func (h *ReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := report.ReportFilter{
		Type:   query.Get("type"),
		Search: query.Get("search"),
	}

	reports, err := h.reportService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, reports)
}

// Create implements ReportHandler.
func (h *ReportHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req report.CreateReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.reportService.Create(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	slog.Info("Report created", "report_id", created.ID, "type", created.Type)
	response.JSON(w, http.StatusCreated, created)
}

// Delete implements ReportHandler.
func (h *ReportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.reportService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.NoContent(w)
}
