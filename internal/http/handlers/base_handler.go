// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wasel/internal/modules/order"
)

type errorResponse struct {
	Error string `json:"error"`
	// Recovery points the client back to the step that can repair the
	// condition (the order-details form for a missing draft).
	Recovery string `json:"recovery,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeOrderError(c *gin.Context, err error) {
	switch err {
	case order.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case order.ErrNoDraft:
		writeJSON(c, http.StatusNotFound, errorResponse{Error: err.Error(), Recovery: "/order-details"})
	case order.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
