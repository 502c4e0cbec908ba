package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// appointmentColumns полный набор колонок таблицы appointments
var appointmentColumns = []string{
	"id",
	"appointment_date",
	"start_time",
	"patient_name",
	"phone",
	"email",
	"treatment",
	"patient_type",
	"prescription",
	"reports",
	"created_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfFree атомарно создает запись, если слот (дата, время) ещё свободен.
//
// Единственная точка, где обеспечивается инвариант уникальности слота:
// уникальный индекс по (appointment_date, start_time) плюс
// INSERT ... ON CONFLICT DO NOTHING. Если конкурирующая запись успела
// занять слот первой, вставка не возвращает строку и метод отдаёт ErrSlotTaken.
// Повтор вызова с тем же ключом безопасен - он снова вернёт ErrSlotTaken,
// двойная запись невозможна.
func (r *Repository) CreateIfFree(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"appointment_date",
			"start_time",
			"patient_name",
			"phone",
			"email",
			"treatment",
			"patient_type",
			"prescription",
			"reports",
		).
		Values(
			appt.Date,
			appt.StartTime,
			appt.PatientName,
			appt.Phone,
			appt.Email,
			appt.Treatment,
			appt.PatientType,
			appt.Prescription,
			appt.Reports,
		).
		Suffix("ON CONFLICT (appointment_date, start_time) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfFree - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfFree - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetByDate получает все записи на указанную дату, отсортированные по времени начала.
// Используется фильтром доступности и предварительной проверкой бронирования.
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"appointment_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// List получает записи с опциональной фильтрацией по дате.
// Без фильтра записи отсортированы по дате по убыванию (сначала новые),
// внутри дня - по времени начала.
func (r *Repository) List(ctx context.Context, date *time.Time) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"appointment_date": *date}).
			OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC, start_time ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdatePrescription обновляет текст назначения врача.
// nil очищает назначение. Ключ слота не затрагивается.
func (r *Repository) UpdatePrescription(ctx context.Context, id int64, prescription *string) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("prescription", prescription).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePrescription - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdatePrescription", query, args)
}

// UpdateReports заменяет список отчётов записи
func (r *Repository) UpdateReports(ctx context.Context, id int64, reports domain.ReportList) error {
	query, args, err := psqlbuilder.Update("appointments").
		Set("reports", reports).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateReports - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateReports", query, args)
}

// Delete физически удаляет запись.
// Единственный способ освободить занятый слот.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Delete", query, args)
}

// execAffectingOne выполняет запрос, который должен затронуть ровно одну строку
func (r *Repository) execAffectingOne(ctx context.Context, op, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.Date,
		&appt.StartTime,
		&appt.PatientName,
		&appt.Phone,
		&appt.Email,
		&appt.Treatment,
		&appt.PatientType,
		&appt.Prescription,
		&appt.Reports,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
