package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const attendanceColumns = `a.id, a.user_id, a.date,
		a.check_in_time, a.check_in_latitude, a.check_in_longitude, a.check_in_accuracy, a.check_in_address,
		a.check_out_time, a.check_out_latitude, a.check_out_longitude, a.check_out_accuracy, a.check_out_address,
		a.work_hours, a.overtime_hours, a.late_minutes, a.status, a.notes,
		a.created_at, a.updated_at`

// stripAlias drops the table alias so the column list can be reused in a
// RETURNING clause.
func stripAlias(columns string) string {
	return strings.ReplaceAll(columns, "a.", "")
}

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.CheckInTime,
		&rec.CheckInLatitude,
		&rec.CheckInLongitude,
		&rec.CheckInAccuracy,
		&rec.CheckInAddress,
		&rec.CheckOutTime,
		&rec.CheckOutLatitude,
		&rec.CheckOutLongitude,
		&rec.CheckOutAccuracy,
		&rec.CheckOutAddress,
		&rec.WorkHours,
		&rec.OvertimeHours,
		&rec.LateMinutes,
		&rec.Status,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	return rec, err
}

func scanRecordWithUser(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.CheckInTime,
		&rec.CheckInLatitude,
		&rec.CheckInLongitude,
		&rec.CheckInAccuracy,
		&rec.CheckInAddress,
		&rec.CheckOutTime,
		&rec.CheckOutLatitude,
		&rec.CheckOutLongitude,
		&rec.CheckOutAccuracy,
		&rec.CheckOutAddress,
		&rec.WorkHours,
		&rec.OvertimeHours,
		&rec.LateMinutes,
		&rec.Status,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UserName,
		&rec.UserDepartment,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository. The unique index on
// (user_id, date) turns a concurrent double check-in into a unique violation
// here instead of a second open record.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, user_id, date,
			check_in_time, check_in_latitude, check_in_longitude, check_in_accuracy, check_in_address,
			late_minutes, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + stripAlias(attendanceColumns)

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.UserID, record.Date,
		record.CheckInTime, record.CheckInLatitude, record.CheckInLongitude, record.CheckInAccuracy, record.CheckInAddress,
		record.LateMinutes, record.Status, record.Notes,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, err
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	rec, err := scanRecordWithUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}

	return rec, nil
}

// GetOpenByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date = $2 AND a.check_out_time IS NULL AND a.check_in_time IS NOT NULL
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNotCheckedIn
		}
		return attendance.Record{}, err
	}

	return rec, nil
}

// HasRecordForDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) HasRecordForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE user_id = $1 AND date = $2)`,
		userID, date,
	).Scan(&exists)
	return exists, err
}

// Close implements attendance.AttendanceRepository. The check_out_time IS NULL
// guard means a record closed by a concurrent request is left alone.
func (r *attendanceRepositoryImpl) Close(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			check_out_accuracy = $4,
			check_out_address = $5,
			work_hours = $6,
			overtime_hours = $7,
			late_minutes = $8,
			status = $9,
			notes = $10,
			updated_at = NOW()
		WHERE id = $11 AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query,
		record.CheckOutTime, record.CheckOutLatitude, record.CheckOutLongitude, record.CheckOutAccuracy, record.CheckOutAddress,
		record.WorkHours, record.OvertimeHours, record.LateMinutes, record.Status, record.Notes,
		record.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNotCheckedIn
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := ` WHERE ($1::text IS NULL OR a.user_id = $1)
		AND ($2::date IS NULL OR a.date = $2)
		AND ($3::date IS NULL OR a.date >= $3)
		AND ($4::date IS NULL OR a.date <= $4)
		AND ($5::text IS NULL OR a.status = $5)`
	args := []any{filter.UserID, filter.Date, filter.StartDate, filter.EndDate, filter.Status}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendances a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id` + where + `
		ORDER BY a.date DESC, a.check_in_time DESC
		LIMIT $6 OFFSET $7
	`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithUser(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}

	return records, total, rows.Err()
}

// ListRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRange(ctx context.Context, start, end time.Time, userID *string, department *string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date >= $1 AND a.date <= $2
			AND ($3::text IS NULL OR a.user_id = $3)
			AND ($4::text IS NULL OR u.department = $4)
		ORDER BY a.date, u.name
	`

	rows, err := q.Query(ctx, query, start, end, userID, department)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecordWithUser(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// BulkCreateAbsences implements attendance.AttendanceRepository. ON CONFLICT
// DO NOTHING skips users that already have a record for the day.
func (r *attendanceRepositoryImpl) BulkCreateAbsences(ctx context.Context, records []attendance.Record) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, user_id, date, late_minutes, status, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, NOW(), NOW())
		ON CONFLICT (user_id, date) DO NOTHING
	`

	created := 0
	for _, rec := range records {
		tag, err := q.Exec(ctx, query, rec.ID, rec.UserID, rec.Date, rec.Status)
		if err != nil {
			return created, err
		}
		created += int(tag.RowsAffected())
	}

	return created, nil
}
