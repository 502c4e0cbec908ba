package reserve_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Выполняется до любых обращений к хранилищу.
func (uc *UseCase) validateRequest(req *Request) error {
	if strings.TrimSpace(req.PatientName) == "" {
		return fmt.Errorf("%w: patientName is required", ErrInvalidInput)
	}
	if len(req.PatientName) > domain.MaxPatientNameLength {
		return fmt.Errorf("%w: patientName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}

	if req.Email != nil && len(*req.Email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}

	if req.PatientType != domain.PatientTypeNew && req.PatientType != domain.PatientTypeExisting {
		return fmt.Errorf("%w: patientType must be %q or %q",
			ErrInvalidInput, domain.PatientTypeNew, domain.PatientTypeExisting)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано и корректно
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Лечение должно присутствовать в каталоге
	if strings.TrimSpace(req.Treatment) == "" {
		return fmt.Errorf("%w: treatment is required", ErrInvalidInput)
	}
	if !uc.treatments.Contains(req.Treatment) {
		return fmt.Errorf("%w: %q", ErrTreatmentUnknown, req.Treatment)
	}

	// Время должно быть валидным началом слота расписания
	if !uc.schedule.Contains(req.StartTime) {
		return fmt.Errorf("%w: %s", ErrTimeNotInCatalog, req.StartTime)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(date, now time.Time) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotNotPast проверяет, что слот на сегодня ещё не прошёл.
// При inclusive=true слот, начинающийся ровно в текущую минуту,
// уже считается недоступным.
func validateSlotNotPast(date time.Time, startTime types.TimeString, now time.Time, inclusive bool) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	if startTime.IsBefore(currentTime) {
		return ErrSlotInPast
	}
	if inclusive && startTime == currentTime {
		return ErrSlotInPast
	}

	return nil
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
