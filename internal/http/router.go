// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wasel/internal/http/handlers"
	"wasel/internal/http/middleware"
	"wasel/internal/maps"
	"wasel/internal/modules/draft"
	"wasel/internal/modules/location"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/order"
	"wasel/internal/session"
)

type RouterDeps struct {
	Drafts   *draft.Service
	Orders   *order.Service
	Matching *matching.Service
	Location *location.Service
	Repo     *session.Repo
	Geocode  *maps.GeocodeService
	Places   *maps.PlacesService
	Routes   *maps.RouteService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Metrics())

	draftHandler := handlers.NewDraftHandler(deps.Drafts, deps.Orders)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Matching)
	driverHandler := handlers.NewDriverHandler(deps.Location, deps.Matching, deps.Repo)
	geoHandler := handlers.NewGeoHandler(deps.Geocode, deps.Places, deps.Routes)

	api := r.Group("/api")

	drafts := api.Group("/drafts/:sid", middleware.Session())
	drafts.PUT("/skeleton", draftHandler.PutSkeleton)
	drafts.PUT("/segments", draftHandler.PutSegments)
	drafts.GET("/summary", draftHandler.GetSummary)
	drafts.POST("/resume", draftHandler.PostResume)
	drafts.DELETE("/resume", draftHandler.DeleteResume)
	drafts.POST("/auto-select", orderHandler.AutoSelect)
	drafts.POST("/choose", orderHandler.Choose)
	drafts.POST("/payment", orderHandler.Pay)
	drafts.POST("/confirm", orderHandler.Confirm)

	api.GET("/orders/:id", orderHandler.GetRecord)

	api.PUT("/drivers/:id/location", driverHandler.UpdateLocation)
	api.PUT("/drivers/:id", driverHandler.PutProfile)
	api.GET("/drivers/nearby", driverHandler.Nearby)

	api.GET("/geocode", geoHandler.ReverseGeocode)
	api.GET("/stores/nearby", geoHandler.NearbyStores)
	api.GET("/routes/estimate", geoHandler.RouteEstimate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
