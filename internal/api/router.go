package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quietriver/campus-booking-backend/internal/booking"
	bookingHttp "github.com/quietriver/campus-booking-backend/internal/booking/http"
	"github.com/quietriver/campus-booking-backend/internal/catalog"
	catalogHttp "github.com/quietriver/campus-booking-backend/internal/catalog/http"
	"github.com/quietriver/campus-booking-backend/internal/report"
	reportHttp "github.com/quietriver/campus-booking-backend/internal/report/http"
)

// Config carries the services the router dispatches to.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	CatalogService catalog.Service
	BookingService booking.Service
	ReportEngine   *report.Engine
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, request ids, logging, recovery) and
// registers the catalog, booking and report routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(corsConfig))

	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reportHandler := reportHttp.NewHandler(cfg.ReportEngine)

	v1 := r.Group("/v1")
	{
		catalogHttp.RegisterRoutes(v1, catalogHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler)
		reportHttp.RegisterRoutes(v1, reportHandler)
	}

	return r
}
