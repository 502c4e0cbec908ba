package watch_appointments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamingFailed = "потоковая передача не поддерживается"
	msgInternalError   = "внутренняя ошибка сервера"
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

// Handle GET /api/v1/appointments/watch?date=YYYY-MM-DD
//
// Отдаёт снапшоты записей на дату как Server-Sent Events. Первый снапшот
// приходит сразу после подписки, последующие при каждом изменении таблицы.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondInternalError(w, msgStreamingFailed)
		return
	}

	snapshots, err := h.service.WatchByDate(ctx, date)
	if err != nil {
		h.logger.Error("WatchAppointments: failed to subscribe for date=%s: %v", dateStr, err)
		handlers.RespondInternalError(w, msgInternalError)
		return
	}

	// Снимаем write deadline сервера, поток живёт до отключения клиента
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Warn("WatchAppointments: failed to clear write deadline: %v", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("WatchAppointments: streaming started for date=%s", dateStr)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WatchAppointments: client disconnected for date=%s", dateStr)
			return
		case snapshot, open := <-snapshots:
			if !open {
				h.logger.Info("WatchAppointments: stream closed for date=%s", dateStr)
				return
			}

			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.logger.Error("WatchAppointments: failed to marshal snapshot for date=%s: %v", dateStr, err)
				return
			}

			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
