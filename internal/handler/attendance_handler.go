package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/attendance"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/response"
	"github.com/troopdesk/troopdesk-backend/internal/service"
	"github.com/troopdesk/troopdesk-backend/internal/validator"
)

// AttendanceHandler handles the attendance sheet of an activity.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	log               zerolog.Logger
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService, log zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		log:               log.With().Str("component", "attendance_handler").Logger(),
	}
}

// GetSheet godoc
// GET /api/v1/activities/:id/attendance
// Returns one row per active member, marked absent when nothing is stored yet.
func (h *AttendanceHandler) GetSheet(c *gin.Context) {
	activityID, ok := parseID(c)
	if !ok {
		return
	}

	sheet, err := h.attendanceService.LoadSheet(c.Request.Context(), activityID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, sheet)
}

// SaveSheet godoc
// PUT /api/v1/activities/:id/attendance
// Applies the edits to a freshly reconciled sheet and saves every row.
// Responds 207 when some rows could not be saved.
func (h *AttendanceHandler) SaveSheet(c *gin.Context) {
	activityID, ok := parseID(c)
	if !ok {
		return
	}

	var req model.SaveAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	res, err := h.attendanceService.SaveSheet(c.Request.Context(), activityID, req.Edits)
	if err != nil {
		h.fail(c, err)
		return
	}

	if res.Partial() {
		response.Partial(c, http.StatusMultiStatus, response.ErrPartialCommit, res)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *AttendanceHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, attendance.ErrFetch):
		h.log.Error().Err(err).Msg("Attendance sheet fetch failed")
		response.Fail(c, http.StatusBadGateway, response.ErrStoreUnavailable)
	default:
		h.log.Error().Err(err).Msg("Attendance request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
