package update_prescription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidBody          = "некорректное тело запроса"
	msgInvalidPrescription  = "некорректное назначение"
	msgAppointmentNotFound  = "запись не найдена"
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

// Handle PATCH /api/v1/appointments/{id}/prescription
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdatePrescriptionRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.UpdatePrescription(ctx, id, &req); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPrescription)
		default:
			h.logger.Error("UpdatePrescription: unexpected error for id=%d: %v", id, err)
			handlers.RespondInternalError(w, msgInternalError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
