package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// filterBookedSlots убирает из кандидатов слоты, время которых уже занято
// записью на эту дату. Сравнение по строкам HH:MM корректно за счёт
// фиксированной ширины формата.
func filterBookedSlots(candidates []types.TimeString, appointments []*domain.Appointment) []types.TimeString {
	if len(appointments) == 0 {
		return candidates
	}

	booked := make(map[types.TimeString]struct{}, len(appointments))
	for _, appt := range appointments {
		booked[appt.StartTime] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}

	return available
}

// filterPastSlots убирает слоты, которые уже прошли относительно now.
// При inclusive=true слот, начинающийся ровно в текущую минуту,
// считается прошедшим (политика slot <= now).
func filterPastSlots(candidates []types.TimeString, now types.TimeString, inclusive bool) []types.TimeString {
	available := make([]types.TimeString, 0, len(candidates))

	for _, slot := range candidates {
		if slot.IsBefore(now) {
			continue
		}
		if inclusive && slot == now {
			continue
		}
		available = append(available, slot)
	}

	return available
}

// groupByWindow раскладывает доступные слоты по окнам приёма расписания
func groupByWindow(schedule domain.ClinicSchedule, slots []types.TimeString) []WindowSlots {
	groups := make([]WindowSlots, len(schedule.Windows))
	for i, window := range schedule.Windows {
		groups[i] = WindowSlots{
			Open:  window.Open,
			Close: window.Close,
			Slots: make([]types.TimeString, 0),
		}
	}

	for _, slot := range slots {
		if i := schedule.WindowIndex(slot); i >= 0 {
			groups[i].Slots = append(groups[i].Slots, slot)
		}
	}

	return groups
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
