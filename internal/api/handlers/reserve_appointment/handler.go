package reserve_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	reserveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_appointment"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidInput     = "не заполнены обязательные поля"
	msgTreatmentUnknown = "неизвестный вид лечения"
	msgTimeNotInCatalog = "время не соответствует расписанию клиники"
	msgInvalidDate      = "дата записи не может быть в прошлом"
	msgSlotInPast       = "выбранное время уже прошло"
	msgSlotTaken        = "слот уже занят"
	msgInternalError    = "внутренняя ошибка сервера"
)

type Handler struct {
	useCase ReserveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ReserveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var httpReq CreateAppointmentRequest
	if err := handlers.DecodeJSON(w, r, &httpReq); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	req, err := httpReq.ToUseCaseRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.useCase.Execute(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, reserveAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, reserveAppointment.ErrTreatmentUnknown):
			handlers.RespondBadRequest(w, msgTreatmentUnknown)
		case errors.Is(err, reserveAppointment.ErrTimeNotInCatalog):
			handlers.RespondBadRequest(w, msgTimeNotInCatalog)
		case errors.Is(err, reserveAppointment.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, reserveAppointment.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)
		case errors.Is(err, reserveAppointment.ErrSlotTaken):
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)
		default:
			h.logger.Error("ReserveAppointment: unexpected error: %v", err)
			handlers.RespondInternalError(w, msgInternalError)
		}
		return
	}

	h.logger.Info("ReserveAppointment: created appointment %d for %s %s", resp.ID, resp.Date.Format("2006-01-02"), resp.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
