package response

import (
	"errors"
	"net/http"

	"github.com/absenta/attendance-backend-go/internal/domain/attendance"
	"github.com/absenta/attendance-backend-go/internal/domain/auth"
	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/domain/user"
	"github.com/absenta/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open check-in for today")
	case errors.Is(err, attendance.ErrOutsideShiftWindow):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, attendance.ErrOutsideGeofence):
		UnprocessableEntity(w, "Location is outside the office geofence")
	case errors.Is(err, attendance.ErrInvalidLocation):
		BadRequest(w, "Invalid location payload", nil)
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		UnprocessableEntity(w, "Check-out must be after check-in")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUserNotActive):
		UnprocessableEntity(w, "User account is deactivated")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrDepartmentRequired):
		Forbidden(w, "Manager account has no department assigned")

	// Setting domain errors
	case errors.Is(err, setting.ErrSettingNotFound):
		NotFound(w, "Setting not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
