package report

import "context"

// ReportService builds role-scoped attendance reports: employees see their
// own records, managers their department, admins everyone.
type ReportService interface {
	AttendanceReport(ctx context.Context, filter AttendanceReportFilter) (AttendanceReportResponse, error)
}
