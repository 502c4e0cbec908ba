package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// PatientType represents the classification of a patient
type PatientType string

const (
	PatientTypeNew      PatientType = "new"
	PatientTypeExisting PatientType = "existing"
)

// Отображаемые названия типов пациентов (используются в API)
const (
	PatientTypeNewLabel      = "New Patient"
	PatientTypeExistingLabel = "Existing Patient"
)

var (
	// ErrInvalidPatientType возвращается при неизвестном типе пациента
	ErrInvalidPatientType = errors.New("domain: invalid patient type")
)

// ParsePatientType конвертирует строку в PatientType.
// Принимает как внутренние значения ("new"), так и отображаемые ("New Patient").
func ParsePatientType(s string) (PatientType, error) {
	switch s {
	case string(PatientTypeNew), PatientTypeNewLabel:
		return PatientTypeNew, nil
	case string(PatientTypeExisting), PatientTypeExistingLabel:
		return PatientTypeExisting, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPatientType, s)
	}
}

// Label возвращает отображаемое название типа пациента
func (p PatientType) Label() string {
	if p == PatientTypeExisting {
		return PatientTypeExistingLabel
	}
	return PatientTypeNewLabel
}

// Report ссылка на загруженный медицинский отчёт
type Report struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ReportList список отчётов, хранится в БД как JSONB
type ReportList []Report

// Value реализует driver.Valuer для записи в JSONB колонку
func (r ReportList) Value() (driver.Value, error) {
	if r == nil {
		r = ReportList{}
	}
	return json.Marshal(r)
}

// Scan реализует sql.Scanner для чтения из JSONB колонки
func (r *ReportList) Scan(src interface{}) error {
	if src == nil {
		*r = ReportList{}
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("domain: cannot scan reports from %T", src)
	}
	return json.Unmarshal(data, r)
}

// Appointment represents a confirmed appointment in the system.
// Инвариант: пара (Date, StartTime) уникальна во всём наборе записей.
type Appointment struct {
	ID           int64
	Date         time.Time
	StartTime    types.TimeString
	PatientName  string
	Phone        string
	Email        *string
	Treatment    string
	PatientType  PatientType
	Prescription *string
	Reports      ReportList
	CreatedAt    time.Time
}

// HasPrescription returns true if staff recorded prescription notes
func (a *Appointment) HasPrescription() bool {
	return a.Prescription != nil && *a.Prescription != ""
}

// IsNewPatient returns true if the appointment was booked for a new patient
func (a *Appointment) IsNewPatient() bool {
	return a.PatientType == PatientTypeNew
}

// SlotKey возвращает ключ слота "YYYY-MM-DD HH:MM" (для логирования)
func (a *Appointment) SlotKey() string {
	return a.Date.Format(DateFormat) + " " + a.StartTime.String()
}
