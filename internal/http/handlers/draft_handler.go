// README: Draft handlers; the order-details form writes here, the summary step reads.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wasel/internal/metrics"
	"wasel/internal/modules/draft"
	"wasel/internal/modules/order"
)

type DraftHandler struct {
	drafts *draft.Service
	orders *order.Service
}

func NewDraftHandler(drafts *draft.Service, orders *order.Service) *DraftHandler {
	return &DraftHandler{drafts: drafts, orders: orders}
}

func (h *DraftHandler) PutSkeleton(c *gin.Context) {
	var sk draft.Skeleton
	if err := c.ShouldBindJSON(&sk); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.drafts.SaveSkeleton(c.Request.Context(), c.Param("sid"), &sk); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.DraftsSaved.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": "saved"})
}

func (h *DraftHandler) PutSegments(c *gin.Context) {
	var segs []draft.RouteSegment
	if err := c.ShouldBindJSON(&segs); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(segs) == 0 {
		writeError(c, http.StatusBadRequest, "segments must be non-empty")
		return
	}
	if err := h.drafts.SaveSegments(c.Request.Context(), c.Param("sid"), segs); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.DraftsSaved.Inc()
	writeJSON(c, http.StatusOK, gin.H{"status": "saved"})
}

func (h *DraftHandler) GetSummary(c *gin.Context) {
	sum, err := h.orders.Summary(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeOrderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sum)
}

func (h *DraftHandler) PostResume(c *gin.Context) {
	var resume order.ResumeState
	if err := c.ShouldBindJSON(&resume); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.orders.SetResume(c.Request.Context(), c.Param("sid"), resume); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, resume)
}

// DeleteResume is the modal close path: it always clears both the open flag
// and the selected driver id.
func (h *DraftHandler) DeleteResume(c *gin.Context) {
	if err := h.orders.ClearResume(c.Request.Context(), c.Param("sid")); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}
