package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/apperrors"
	"tasktracker/internal/authz"
)

// currentPrincipal rebuilds the principal from the context keys the auth
// middleware set. Robust to int/int64/float64 (JWT claims decode to float64).
func currentPrincipal(c *gin.Context) (authz.Principal, bool) {
	var p authz.Principal
	v, ok := c.Get("user_id")
	if !ok {
		return p, false
	}
	switch t := v.(type) {
	case int64:
		p.ID = t
	case int:
		p.ID = int64(t)
	case float64:
		p.ID = int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			p.ID = n
		}
	}
	roleV, ok := c.Get("role")
	if !ok {
		return p, false
	}
	p.Role, _ = roleV.(string)
	return p, p.ID != 0 && p.Role != ""
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy to HTTP statuses. Anything outside
// the taxonomy is logged and surfaced without internal detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("[http][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
