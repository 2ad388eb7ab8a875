// README: Driver handlers for location ingestion, profile slots and nearby lookup.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wasel/internal/modules/location"
	"wasel/internal/modules/matching"
	"wasel/internal/session"
	"wasel/internal/types"
)

type DriverHandler struct {
	location *location.Service
	matching *matching.Service
	repo     *session.Repo
}

func NewDriverHandler(locationSvc *location.Service, matchingSvc *matching.Service, repo *session.Repo) *DriverHandler {
	return &DriverHandler{location: locationSvc, matching: matchingSvc, repo: repo}
}

type locationUpdateReq struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Seq  int64   `json:"seq"`
	TsMs int64   `json:"tsMs"`
}

func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.location.UpdateDriverLocation(c.Request.Context(), location.Update{
		DriverID: c.Param("id"),
		Seq:      req.Seq,
		Point:    types.Point{Lat: req.Lat, Lng: req.Lng},
		TsMs:     req.TsMs,
	})
	if err == location.ErrBadUpdate {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// PutProfile writes the per-driver cache slot read later by the confirmation
// step. The choose-driver page is the usual writer.
func (h *DriverHandler) PutProfile(c *gin.Context) {
	var d matching.Driver
	if err := c.ShouldBindJSON(&d); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	d.ID = c.Param("id")
	if err := h.repo.SaveDriver(c.Request.Context(), d.ID, &d); err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, d)
}

func (h *DriverHandler) Nearby(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	candidates, err := h.matching.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"candidates": candidates})
}
