// README: Geocoding and store-discovery handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wasel/internal/maps"
)

type GeoHandler struct {
	geocode *maps.GeocodeService
	places  *maps.PlacesService
	routes  *maps.RouteService
}

// NewGeoHandler accepts nil services; geocoding then falls back to raw
// coordinates while store discovery and route estimates report unavailable.
func NewGeoHandler(geocode *maps.GeocodeService, places *maps.PlacesService, routes *maps.RouteService) *GeoHandler {
	return &GeoHandler{geocode: geocode, places: places, routes: routes}
}

func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	locale := c.DefaultQuery("lang", "ar")
	addr := h.geocode.ReverseGeocode(c.Request.Context(), lat, lng, locale)
	writeJSON(c, http.StatusOK, gin.H{"address": addr})
}

func (h *GeoHandler) NearbyStores(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "store discovery not configured")
		return
	}
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	maxKm, _ := strconv.ParseFloat(c.DefaultQuery("max_km", "5"), 64)

	stores, err := h.places.NearbyStores(c.Request.Context(), lat, lng, limit, maxKm)
	if err != nil {
		writeError(c, http.StatusBadGateway, "store discovery failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"stores": stores})
}

// RouteEstimate previews the road time between a pickup and a dropoff.
func (h *GeoHandler) RouteEstimate(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "route estimates not configured")
		return
	}
	fromLat, err1 := strconv.ParseFloat(c.Query("from_lat"), 64)
	fromLng, err2 := strconv.ParseFloat(c.Query("from_lng"), 64)
	toLat, err3 := strconv.ParseFloat(c.Query("to_lat"), 64)
	toLng, err4 := strconv.ParseFloat(c.Query("to_lng"), 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		writeError(c, http.StatusBadRequest, "from and to coordinates are required")
		return
	}

	est, err := h.routes.Estimate(c.Request.Context(), fromLat, fromLng, toLat, toLng)
	if err != nil {
		writeError(c, http.StatusBadGateway, "route estimate failed")
		return
	}
	writeJSON(c, http.StatusOK, est)
}
