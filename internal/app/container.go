package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/quietriver/campus-booking-backend/internal/api"
	"github.com/quietriver/campus-booking-backend/internal/booking"
	"github.com/quietriver/campus-booking-backend/internal/catalog"
	"github.com/quietriver/campus-booking-backend/internal/report"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router       *gin.Engine
	Catalog      *catalog.Catalog
	BookingStore *booking.Store
}

// NewContainer initializes all modules, loads the catalog and booking state
// from the durable store, and returns the container.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	// Catalog module
	cat := catalog.New()
	catRepo := catalog.NewPgxRepository(cfg.DBPool)
	snap, err := catRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	cat.Populate(snap)
	catService := catalog.NewService(cat, catRepo, cfg.Logger)

	// Booking module
	store := booking.NewStore()
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	loaded, err := bookingRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	store.Seed(loaded)
	bookingService := booking.NewService(store, cat, bookingRepo, cfg.Logger)

	// Deleting catalog entities must fail while bookings reference them.
	cat.BindBookings(store)

	// Report module
	engine := report.NewEngine(store, cat)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		CatalogService: catService,
		BookingService: bookingService,
		ReportEngine:   engine,
	})

	cfg.Logger.Info("state loaded",
		zap.Int("rooms", len(snap.Rooms)),
		zap.Int("users", len(snap.Users)),
		zap.Int("lecturers", len(snap.Lecturers)),
		zap.Int("courses", len(snap.Courses)),
		zap.Int("bookings", len(loaded)))

	return &Container{
		Router:       router,
		Catalog:      cat,
		BookingStore: store,
	}, nil
}
