package report

import (
	"context"
	"testing"
	"time"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/report"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*3600)

type fakeAttendanceRepo struct {
	records []attendance.Record

	// captured arguments of the last ListRange call
	gotUserID      *string
	gotDepartment  *string
	listRangeCalls int
}

func (f *fakeAttendanceRepo) Create(context.Context, attendance.Record) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeAttendanceRepo) GetByID(context.Context, string) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeAttendanceRepo) GetOpenByUserAndDate(context.Context, string, time.Time) (attendance.Record, error) {
	panic("not used")
}

func (f *fakeAttendanceRepo) HasRecordForDate(context.Context, string, time.Time) (bool, error) {
	panic("not used")
}

func (f *fakeAttendanceRepo) Close(context.Context, attendance.Record) error {
	panic("not used")
}

func (f *fakeAttendanceRepo) List(context.Context, attendance.RecordFilter) ([]attendance.Record, int64, error) {
	panic("not used")
}

func (f *fakeAttendanceRepo) ListRange(_ context.Context, start, end time.Time, userID *string, department *string) ([]attendance.Record, error) {
	f.gotUserID = userID
	f.gotDepartment = department
	f.listRangeCalls++

	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		if userID != nil && rec.UserID != *userID {
			continue
		}
		if department != nil && (rec.UserDepartment == nil || *rec.UserDepartment != *department) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(context.Context, []attendance.Record) (int, error) {
	panic("not used")
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(context.Context, *string) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) ListActive(context.Context) ([]user.User, error) { return nil, nil }

var testTokenAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()

	token, _, err := testTokenAuth.Encode(map[string]any{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", s, jakarta)
	return d
}

func record(userID, date string, status attendance.Status, workHours, overtime float64, dept string) attendance.Record {
	name := map[string]string{"u1": "Ayu", "u2": "Budi", "u3": "Citra"}[userID]
	return attendance.Record{
		ID:             userID + "-" + date,
		UserID:         userID,
		Date:           day(date),
		Status:         status,
		WorkHours:      ptr(workHours),
		OvertimeHours:  ptr(overtime),
		UserName:       ptr(name),
		UserDepartment: ptr(dept),
	}
}

func newService() (*fakeAttendanceRepo, *fakeUserRepo, report.ReportService) {
	attRepo := &fakeAttendanceRepo{records: []attendance.Record{
		record("u1", "2026-03-02", attendance.StatusPresent, 8, 0, "eng"),
		record("u1", "2026-03-03", attendance.StatusLate, 8.5, 0.5, "eng"),
		record("u1", "2026-03-04", attendance.StatusAbsent, 0, 0, "eng"),
		record("u2", "2026-03-02", attendance.StatusHalfDay, 3, 0, "eng"),
		record("u2", "2026-03-03", attendance.StatusOutsideGeofence, 8, 0, "eng"),
		record("u3", "2026-03-02", attendance.StatusPresent, 9, 1, "sales"),
	}}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"u1":    {ID: "u1", Name: "Ayu", Role: user.RoleUser, Department: ptr("eng"), IsActive: true},
		"u2":    {ID: "u2", Name: "Budi", Role: user.RoleUser, Department: ptr("eng"), IsActive: true},
		"u3":    {ID: "u3", Name: "Citra", Role: user.RoleUser, Department: ptr("sales"), IsActive: true},
		"mgr":   {ID: "mgr", Name: "Mgr", Role: user.RoleManager, Department: ptr("eng"), IsActive: true},
		"mgr-2": {ID: "mgr-2", Name: "Mgr Two", Role: user.RoleManager, IsActive: true},
		"admin": {ID: "admin", Name: "Admin", Role: user.RoleAdmin, IsActive: true},
	}}
	return attRepo, userRepo, NewReportService(attRepo, userRepo, jakarta)
}

func TestAttendanceReport_UserSummaries(t *testing.T) {
	_, _, svc := newService()

	resp, err := svc.AttendanceReport(authedContext(t, "admin"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
		Type:      report.TypeUser,
	})
	require.NoError(t, err)

	require.Len(t, resp.UserSummaries, 3)
	assert.Empty(t, resp.DailySummaries)

	ayu := resp.UserSummaries[0]
	assert.Equal(t, "Ayu", ayu.UserName)
	assert.Equal(t, 3, ayu.TotalDays)
	assert.Equal(t, 1, ayu.PresentDays)
	assert.Equal(t, 1, ayu.LateDays)
	assert.Equal(t, 1, ayu.AbsentDays)
	assert.InDelta(t, 16.5, ayu.TotalWorkHours, 1e-9)
	assert.InDelta(t, 0.5, ayu.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 8.25, ayu.AverageWorkHours, 1e-9)
	assert.InDelta(t, 66.67, ayu.AttendancePercentage, 1e-9)

	budi := resp.UserSummaries[1]
	assert.Equal(t, 1, budi.HalfDays)
	assert.Equal(t, 1, budi.OutsideGeofenceDays)
	assert.InDelta(t, 100, budi.AttendancePercentage, 1e-9)
}

func TestAttendanceReport_DailySummaries(t *testing.T) {
	_, _, svc := newService()

	resp, err := svc.AttendanceReport(authedContext(t, "admin"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
	})
	require.NoError(t, err)

	require.Len(t, resp.DailySummaries, 3)
	assert.Equal(t, report.TypeDaily, resp.Type)

	first := resp.DailySummaries[0]
	assert.Equal(t, "2026-03-02", first.Date)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 2, first.PresentCount)
	assert.Equal(t, 1, first.HalfDayCount)
	assert.InDelta(t, 100, first.AttendancePercentage, 1e-9)

	third := resp.DailySummaries[2]
	assert.Equal(t, "2026-03-04", third.Date)
	assert.Equal(t, 1, third.AbsentCount)
	assert.InDelta(t, 0, third.AttendancePercentage, 1e-9)
}

func TestAttendanceReport_EmployeePinnedToSelf(t *testing.T) {
	attRepo, _, svc := newService()

	resp, err := svc.AttendanceReport(authedContext(t, "u1"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
		UserID:    ptr("u2"), // ignored for plain employees
		Type:      report.TypeUser,
	})
	require.NoError(t, err)

	require.NotNil(t, attRepo.gotUserID)
	assert.Equal(t, "u1", *attRepo.gotUserID)
	require.Len(t, resp.UserSummaries, 1)
	assert.Equal(t, "u1", resp.UserSummaries[0].UserID)
}

func TestAttendanceReport_ManagerScopedToDepartment(t *testing.T) {
	attRepo, _, svc := newService()

	resp, err := svc.AttendanceReport(authedContext(t, "mgr"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
		Type:      report.TypeUser,
	})
	require.NoError(t, err)

	require.NotNil(t, attRepo.gotDepartment)
	assert.Equal(t, "eng", *attRepo.gotDepartment)
	require.Len(t, resp.UserSummaries, 2)
}

func TestAttendanceReport_ManagerCannotReachOtherDepartment(t *testing.T) {
	_, _, svc := newService()

	_, err := svc.AttendanceReport(authedContext(t, "mgr"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
		UserID:    ptr("u3"),
	})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)
}

// A manager without a department must not fall through to an unscoped,
// admin-wide view.
func TestAttendanceReport_ManagerWithoutDepartmentRejected(t *testing.T) {
	attRepo, _, svc := newService()

	_, err := svc.AttendanceReport(authedContext(t, "mgr-2"), report.AttendanceReportFilter{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-07",
	})

	assert.ErrorIs(t, err, user.ErrDepartmentRequired)
	assert.Zero(t, attRepo.listRangeCalls)
}

func TestAttendanceReport_InvalidRange(t *testing.T) {
	_, _, svc := newService()

	_, err := svc.AttendanceReport(authedContext(t, "admin"), report.AttendanceReportFilter{
		StartDate: "2026-03-07",
		EndDate:   "2026-03-01",
	})
	assert.Error(t, err)
}
