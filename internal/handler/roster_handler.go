package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/response"
	"github.com/troopdesk/troopdesk-backend/internal/service"
	"github.com/troopdesk/troopdesk-backend/internal/validator"
)

// RosterHandler handles the member and activity listings.
type RosterHandler struct {
	rosterService *service.RosterService
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

// ListMembers godoc
// GET /api/v1/members?status=&group=
func (h *RosterHandler) ListMembers(c *gin.Context) {
	var q model.ListMembersQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	members, err := h.rosterService.ListMembers(c.Request.Context(), model.MemberFilter{
		Status: model.MemberStatus(q.Status),
		Group:  q.Group,
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"members": members})
}

// ListActivities godoc
// GET /api/v1/activities
// Lists activities newest first and preselects the most recent one.
func (h *RosterHandler) ListActivities(c *gin.Context) {
	list, err := h.rosterService.ListActivities(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, list)
}
