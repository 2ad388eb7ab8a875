// README: Order handlers for driver selection, payment and confirmation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wasel/internal/metrics"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/order"
	"wasel/internal/types"
)

type OrderHandler struct {
	orders   *order.Service
	matching *matching.Service
}

func NewOrderHandler(orders *order.Service, matchingSvc *matching.Service) *OrderHandler {
	return &OrderHandler{orders: orders, matching: matchingSvc}
}

// AutoSelect confirms the platform-chosen driver. Below 100% completion it
// returns the transient warning instead of proceeding.
func (h *OrderHandler) AutoSelect(c *gin.Context) {
	sid := c.Param("sid")
	res, err := h.orders.AutoSelect(c.Request.Context(), sid)
	if err == order.ErrIncomplete {
		h.writeIncomplete(c, sid)
		return
	}
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// Choose gates the manual driver-choice path and returns candidates around
// the pickup.
func (h *OrderHandler) Choose(c *gin.Context) {
	sid := c.Param("sid")
	o, err := h.orders.Choose(c.Request.Context(), sid)
	if err == order.ErrIncomplete {
		h.writeIncomplete(c, sid)
		return
	}
	if err != nil {
		writeOrderError(c, err)
		return
	}

	var pickup types.Point
	if p := o.Pickup(); p != nil && p.Location != nil {
		pickup = *p.Location
	}
	candidates, err := h.matching.Nearby(c.Request.Context(), pickup)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}

func (h *OrderHandler) Pay(c *gin.Context) {
	est, err := h.orders.Pay(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	metrics.PaymentsSimulated.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": "paid", "pricing": est})
}

func (h *OrderHandler) Confirm(c *gin.Context) {
	rec, err := h.orders.Confirm(c.Request.Context(), c.Param("sid"), c.Query("driver_id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	metrics.OrdersConfirmed.Inc()
	writeJSON(c, http.StatusCreated, rec)
}

func (h *OrderHandler) GetRecord(c *gin.Context) {
	rec, err := h.orders.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

func (h *OrderHandler) writeIncomplete(c *gin.Context, sid string) {
	metrics.IncompleteWarnings.Inc()
	completion := 0
	if sum, err := h.orders.Summary(c.Request.Context(), sid); err == nil {
		completion = sum.Completion
	}
	writeJSON(c, http.StatusUnprocessableEntity, order.IncompleteWarning{
		Completion:          completion,
		Message:             "please complete all required fields before choosing a driver",
		DismissAfterSeconds: 5,
	})
}
