package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date                time.Time          // Дата, на которую запрашивались слоты
	SlotDurationMinutes int                // Длительность каждого слота
	Slots               []types.TimeString // Все доступные слоты по возрастанию
	Groups              []WindowSlots      // Слоты, сгруппированные по окнам приёма
}

// WindowSlots доступные слоты одного окна приёма
type WindowSlots struct {
	Open  types.TimeString   // Начало окна
	Close types.TimeString   // Конец окна
	Slots []types.TimeString // Доступные слоты внутри окна
}
