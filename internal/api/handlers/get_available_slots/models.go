package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string        `json:"date"`
	SlotDurationMinutes int           `json:"slotDurationMinutes"`
	Slots               []string      `json:"slots"`
	Groups              []WindowGroup `json:"groups"`
}

// WindowGroup слоты одного окна приёма
type WindowGroup struct {
	Open  string   `json:"open"`
	Close string   `json:"close"`
	Slots []string `json:"slots"`
}

// ToUseCaseRequest конвертирует query-параметры в модель use case
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = s.String()
	}

	groups := make([]WindowGroup, len(resp.Groups))
	for i, g := range resp.Groups {
		groupSlots := make([]string, len(g.Slots))
		for j, s := range g.Slots {
			groupSlots[j] = s.String()
		}
		groups[i] = WindowGroup{
			Open:  g.Open.String(),
			Close: g.Close.String(),
			Slots: groupSlots,
		}
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
		Groups:              groups,
	}
}
