package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

// AttendanceJobs holds the scheduled attendance background work.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	location *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		location:       location,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_users", 1*time.Hour, j.MarkAbsentUsers)
}

// MarkAbsentUsers inserts an absent record for every active user with no
// attendance row for the previous day. It never touches the current day, so
// a user who has not checked in yet is never locked out of doing so; reruns
// are no-ops because existing rows are skipped.
func (j *AttendanceJobs) MarkAbsentUsers(ctx context.Context) error {
	now := j.now().In(j.location)

	users, err := j.userRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	records := make([]attendance.Record, 0, len(users))
	for _, u := range users {
		records = append(records, attendance.Record{
			ID:     uuid.NewString(),
			UserID: u.ID,
			Date:   day,
			Status: attendance.StatusAbsent,
		})
	}

	created, err := j.attendanceRepo.BulkCreateAbsences(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to create absence records: %w", err)
	}

	if created > 0 {
		slog.Info("Cron: marked users absent", "count", created, "date", day.Format("2006-01-02"))
	}

	return nil
}
