package remove_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidReportIndex   = "некорректный индекс отчёта"
	msgAppointmentNotFound  = "запись не найдена"
	msgReportNotFound       = "отчёт не найден"
	msgInternalError        = "внутренняя ошибка сервера"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{id}/reports/{index}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 {
		handlers.RespondBadRequest(w, msgInvalidReportIndex)
		return
	}

	if err := h.service.RemoveReport(ctx, id, index); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrReportNotFound):
			handlers.RespondNotFound(w, msgReportNotFound)
		default:
			h.logger.Error("RemoveReport: unexpected error for id=%d index=%d: %v", id, index, err)
			handlers.RespondInternalError(w, msgInternalError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
