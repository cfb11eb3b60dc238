package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/report"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	userRepo       user.UserRepository
	location       *time.Location
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	location *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
		location:       location,
	}
}

// AttendanceReport implements report.ReportService. The filter is narrowed
// to the caller's reach before any rows are read: employees are pinned to
// their own user ID, managers to their department, admins see everything.
func (r *ReportServiceImpl) AttendanceReport(ctx context.Context, filter report.AttendanceReportFilter) (report.AttendanceReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.AttendanceReportResponse{}, err
	}

	caller, err := r.caller(ctx)
	if err != nil {
		return report.AttendanceReportResponse{}, err
	}

	switch {
	case caller.IsAdmin():
		// no narrowing
	case caller.IsManager():
		if caller.Department == nil {
			return report.AttendanceReportResponse{}, user.ErrDepartmentRequired
		}
		filter.Department = caller.Department
		if filter.UserID != nil {
			target, err := r.userRepo.GetByID(ctx, *filter.UserID)
			if err != nil {
				return report.AttendanceReportResponse{}, err
			}
			if !sameDepartment(caller.Department, target.Department) {
				return report.AttendanceReportResponse{}, user.ErrManagerAccessRequired
			}
		}
	default:
		filter.UserID = &caller.ID
		filter.Department = nil
	}

	start, err := time.ParseInLocation("2006-01-02", filter.StartDate, r.location)
	if err != nil {
		return report.AttendanceReportResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", filter.EndDate, r.location)
	if err != nil {
		return report.AttendanceReportResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	records, err := r.attendanceRepo.ListRange(ctx, start, end, filter.UserID, filter.Department)
	if err != nil {
		return report.AttendanceReportResponse{}, fmt.Errorf("failed to list records for report: %w", err)
	}

	resp := report.AttendanceReportResponse{
		Type:        filter.Type,
		StartDate:   filter.StartDate,
		EndDate:     filter.EndDate,
		GeneratedAt: time.Now().In(r.location).Format(time.RFC3339),
	}

	switch filter.Type {
	case report.TypeUser:
		resp.UserSummaries = summarizeByUser(records)
	default:
		resp.DailySummaries = summarizeByDay(records)
	}

	return resp, nil
}

func (r *ReportServiceImpl) caller(ctx context.Context) (user.User, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.User{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	return r.userRepo.GetByID(ctx, userID)
}

func summarizeByUser(records []attendance.Record) []report.UserSummary {
	byUser := make(map[string]*report.UserSummary)
	order := make([]string, 0)

	for _, rec := range records {
		s, ok := byUser[rec.UserID]
		if !ok {
			s = &report.UserSummary{UserID: rec.UserID}
			if rec.UserName != nil {
				s.UserName = *rec.UserName
			}
			s.Department = rec.UserDepartment
			byUser[rec.UserID] = s
			order = append(order, rec.UserID)
		}

		s.TotalDays++
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusLate:
			s.LateDays++
		case attendance.StatusHalfDay:
			s.HalfDays++
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusOutsideGeofence:
			s.OutsideGeofenceDays++
		}
		if rec.WorkHours != nil {
			s.TotalWorkHours += *rec.WorkHours
		}
		if rec.OvertimeHours != nil {
			s.TotalOvertimeHours += *rec.OvertimeHours
		}
	}

	summaries := make([]report.UserSummary, 0, len(order))
	for _, id := range order {
		s := byUser[id]
		attended := s.TotalDays - s.AbsentDays
		if attended > 0 {
			s.AverageWorkHours = round2(s.TotalWorkHours / float64(attended))
		}
		if s.TotalDays > 0 {
			s.AttendancePercentage = round2(float64(attended) / float64(s.TotalDays) * 100)
		}
		s.TotalWorkHours = round2(s.TotalWorkHours)
		s.TotalOvertimeHours = round2(s.TotalOvertimeHours)
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UserName < summaries[j].UserName
	})
	return summaries
}

func summarizeByDay(records []attendance.Record) []report.DailySummary {
	byDay := make(map[string]*report.DailySummary)

	for _, rec := range records {
		day := rec.Date.Format("2006-01-02")
		s, ok := byDay[day]
		if !ok {
			s = &report.DailySummary{Date: day}
			byDay[day] = s
		}

		s.Total++
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentCount++
		case attendance.StatusLate:
			s.LateCount++
		case attendance.StatusHalfDay:
			s.HalfDayCount++
		case attendance.StatusAbsent:
			s.AbsentCount++
		case attendance.StatusOutsideGeofence:
			s.OutsideGeofenceCount++
		}
	}

	summaries := make([]report.DailySummary, 0, len(byDay))
	for _, s := range byDay {
		if s.Total > 0 {
			s.AttendancePercentage = round2(float64(s.Total-s.AbsentCount) / float64(s.Total) * 100)
		}
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})
	return summaries
}

func sameDepartment(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
