package reserve_appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	reserveAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var errBadRequestBody = errors.New("reserve_appointment.handler: invalid request body")

// CreateAppointmentRequest HTTP модель запроса на запись
type CreateAppointmentRequest struct {
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Treatment   string  `json:"treatment"`
	PatientType string  `json:"patientType"`
}

// AppointmentResponse HTTP модель подтверждённой записи
type AppointmentResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email,omitempty"`
	Treatment   string  `json:"treatment"`
	PatientType string  `json:"patientType"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP модель в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*reserveAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(r.Date))
	if err != nil {
		return nil, errBadRequestBody
	}

	patientType, err := domain.ParsePatientType(r.PatientType)
	if err != nil {
		return nil, errBadRequestBody
	}

	return &reserveAppointment.Request{
		Date:        date,
		StartTime:   types.TimeString(strings.TrimSpace(r.Time)),
		PatientName: strings.TrimSpace(r.Name),
		Phone:       strings.TrimSpace(r.Phone),
		Email:       r.Email,
		Treatment:   strings.TrimSpace(r.Treatment),
		PatientType: patientType,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          resp.ID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.StartTime.String(),
		Name:        resp.PatientName,
		Phone:       resp.Phone,
		Email:       resp.Email,
		Treatment:   resp.Treatment,
		PatientType: resp.PatientType.Label(),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
