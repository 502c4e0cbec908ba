package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// ListAppointmentsRequest запрос на получение списка записей
type ListAppointmentsRequest struct {
	Date *time.Time // Фильтр по дате (опционально, nil - все записи)
}

// UpdatePrescriptionRequest запрос на обновление назначения врача
type UpdatePrescriptionRequest struct {
	Prescription string `json:"prescription"` // Пустая строка очищает назначение
}

// AttachReportRequest запрос на прикрепление отчёта
type AttachReportRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID           int64            `json:"id"`
	Date         string           `json:"date"`      // "2025-06-10"
	StartTime    string           `json:"startTime"` // "10:00"
	PatientName  string           `json:"patientName"`
	Phone        string           `json:"phone"`
	Email        *string          `json:"email,omitempty"`
	Treatment    string           `json:"treatment"`
	PatientType  string           `json:"patientType"` // "New Patient" / "Existing Patient"
	Prescription *string          `json:"prescription,omitempty"`
	Reports      []ReportResponse `json:"reports"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ReportResponse ссылка на загруженный отчёт
type ReportResponse struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	reports := make([]ReportResponse, len(a.Reports))
	for i, r := range a.Reports {
		reports[i] = ReportResponse{
			Name:       r.Name,
			URL:        r.URL,
			UploadedAt: r.UploadedAt,
		}
	}

	return &AppointmentResponse{
		ID:           a.ID,
		Date:         a.Date.Format(domain.DateFormat),
		StartTime:    a.StartTime.String(),
		PatientName:  a.PatientName,
		Phone:        a.Phone,
		Email:        a.Email,
		Treatment:    a.Treatment,
		PatientType:  a.PatientType.Label(),
		Prescription: a.Prescription,
		Reports:      reports,
		CreatedAt:    a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments = append(resp.Appointments, *apptResp)
		}
	}

	return resp
}
