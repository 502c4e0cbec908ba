package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MaxPatientNameLength  = 200
	MaxPhoneLength        = 32
	MaxEmailLength        = 254
	MaxPrescriptionLength = 5000
	MaxReportNameLength   = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
