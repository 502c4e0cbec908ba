package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// ScheduleWindow одно окно приёма в течение дня.
// Полуинтервал [Open, Close): слот, заканчивающийся ровно в Close, допустим.
type ScheduleWindow struct {
	Open  types.TimeString
	Close types.TimeString
}

// ClinicSchedule расписание приёма клиники: набор окон и длительность слота.
// Детерминированный источник всех возможных слотов дня - чистая функция
// конфигурации, без побочных эффектов.
type ClinicSchedule struct {
	Windows             []ScheduleWindow
	SlotDurationMinutes int
}

// GenerateSlots генерирует упорядоченный список всех слотов дня.
// Слоты идут с шагом SlotDurationMinutes от начала каждого окна;
// слот, не помещающийся целиком в окно, не генерируется.
// Окна предполагаются валидированными (возрастающие, без пересечений),
// поэтому результат строго возрастает и не содержит дубликатов.
func (s ClinicSchedule) GenerateSlots() []types.TimeString {
	slots := make([]types.TimeString, 0)

	for _, window := range s.Windows {
		current := window.Open
		for current.IsBefore(window.Close) {
			slotEnd, err := current.AddMinutes(s.SlotDurationMinutes)
			if err != nil || slotEnd.IsAfter(window.Close) {
				break
			}
			slots = append(slots, current)
			current = slotEnd
		}
	}

	return slots
}

// Contains проверяет, что время является валидным началом слота
func (s ClinicSchedule) Contains(t types.TimeString) bool {
	for _, slot := range s.GenerateSlots() {
		if slot == t {
			return true
		}
	}
	return false
}

// WindowIndex возвращает индекс окна, которому принадлежит слот,
// или -1, если слот не попадает ни в одно окно
func (s ClinicSchedule) WindowIndex(t types.TimeString) int {
	for i, window := range s.Windows {
		if !t.IsBefore(window.Open) && t.IsBefore(window.Close) {
			return i
		}
	}
	return -1
}
