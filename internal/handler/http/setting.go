package http

import (
	"encoding/json"
	"net/http"

	"github.com/absenta/attendance-backend-go/internal/domain/setting"
	"github.com/absenta/attendance-backend-go/internal/handler/http/response"
)

type SettingHandler interface {
	GetOfficeLocation(w http.ResponseWriter, r *http.Request)
	UpdateOfficeLocation(w http.ResponseWriter, r *http.Request)
	GetWorkSchedule(w http.ResponseWriter, r *http.Request)
	UpdateWorkSchedule(w http.ResponseWriter, r *http.Request)
	GetGeofencing(w http.ResponseWriter, r *http.Request)
	UpdateGeofencing(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	settingService setting.SettingService
}

func NewSettingHandler(settingService setting.SettingService) SettingHandler {
	return &settingHandlerImpl{
		settingService: settingService,
	}
}

// GetOfficeLocation implements SettingHandler.
func (h *settingHandlerImpl) GetOfficeLocation(w http.ResponseWriter, r *http.Request) {
	office, err := h.settingService.GetOfficeLocation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, office)
}

// UpdateOfficeLocation implements SettingHandler.
func (h *settingHandlerImpl) UpdateOfficeLocation(w http.ResponseWriter, r *http.Request) {
	var req setting.UpdateOfficeLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	office, err := h.settingService.UpdateOfficeLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Office location updated", office)
}

// GetWorkSchedule implements SettingHandler.
func (h *settingHandlerImpl) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	ws, err := h.settingService.GetWorkSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, ws)
}

// UpdateWorkSchedule implements SettingHandler.
func (h *settingHandlerImpl) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	var req setting.UpdateWorkScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	ws, err := h.settingService.UpdateWorkSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Work schedule updated", ws)
}

// GetGeofencing implements SettingHandler.
func (h *settingHandlerImpl) GetGeofencing(w http.ResponseWriter, r *http.Request) {
	g, err := h.settingService.GetGeofencing(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, g)
}

// UpdateGeofencing implements SettingHandler.
func (h *settingHandlerImpl) UpdateGeofencing(w http.ResponseWriter, r *http.Request) {
	var req setting.UpdateGeofencingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	g, err := h.settingService.UpdateGeofencing(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofencing settings updated", g)
}
