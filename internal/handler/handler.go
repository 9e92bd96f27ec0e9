// Package handler exposes the services over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/troopdesk/troopdesk-backend/internal/response"
)

// parseID reads the :id path parameter. It responds 400 and returns false
// when the id is not a UUID.
func parseID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id.String(), true
}
