package http

import (
	"net/http"

	"github.com/absenta/attendance-backend-go/internal/domain/report"
	"github.com/absenta/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// AttendanceReport implements ReportHandler.
func (h *reportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := report.AttendanceReportFilter{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
		Type:      query.Get("type"),
	}
	if v := query.Get("user_id"); v != "" {
		filter.UserID = &v
	}
	if v := query.Get("department"); v != "" {
		filter.Department = &v
	}

	result, err := h.reportService.AttendanceReport(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
