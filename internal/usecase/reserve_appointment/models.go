package reserve_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Date        time.Time          // Дата записи (без времени)
	StartTime   types.TimeString   // Время начала слота (например, "10:00")
	PatientName string             // Имя пациента (обязательно)
	Phone       string             // Телефон (обязательно)
	Email       *string            // Email (опционально)
	Treatment   string             // Лечение из каталога (обязательно)
	PatientType domain.PatientType // Тип пациента: новый или существующий
}

// Response модель ответа с подтверждённой записью
type Response struct {
	ID          int64              // ID созданной записи
	Date        time.Time          // Дата записи
	StartTime   types.TimeString   // Время начала
	PatientName string             // Имя пациента
	Phone       string             // Телефон
	Email       *string            // Email
	Treatment   string             // Лечение
	PatientType domain.PatientType // Тип пациента
	CreatedAt   time.Time          // Время создания (проставляется хранилищем)
}

// fromDomain конвертирует подтверждённую запись в response
func fromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:          appt.ID,
		Date:        appt.Date,
		StartTime:   appt.StartTime,
		PatientName: appt.PatientName,
		Phone:       appt.Phone,
		Email:       appt.Email,
		Treatment:   appt.Treatment,
		PatientType: appt.PatientType,
		CreatedAt:   appt.CreatedAt,
	}
}
