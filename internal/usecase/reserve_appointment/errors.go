package reserve_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при пустых или некорректных обязательных полях
	ErrInvalidInput = errors.New("reserve_appointment: invalid input data")

	// ErrTreatmentUnknown возвращается, когда лечение отсутствует в каталоге
	ErrTreatmentUnknown = errors.New("reserve_appointment: unknown treatment")

	// ErrTimeNotInCatalog возвращается, когда время не является слотом расписания
	ErrTimeNotInCatalog = errors.New("reserve_appointment: time is not a valid slot")

	// ErrInvalidDate возвращается при дате записи в прошлом
	ErrInvalidDate = errors.New("reserve_appointment: invalid appointment date")

	// ErrSlotInPast возвращается, когда слот на сегодня уже прошёл
	ErrSlotInPast = errors.New("reserve_appointment: slot is in the past")

	// ErrSlotTaken возвращается, когда слот уже занят другой записью
	ErrSlotTaken = errors.New("reserve_appointment: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_appointment: internal error")
)
