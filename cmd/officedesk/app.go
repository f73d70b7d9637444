package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/officedesk/officedesk/internal/config"
	"github.com/officedesk/officedesk/internal/domain/customer"
	"github.com/officedesk/officedesk/internal/domain/doctor"
	"github.com/officedesk/officedesk/internal/domain/scheduling"
	"github.com/officedesk/officedesk/internal/platform/db"
	"github.com/officedesk/officedesk/internal/platform/middleware"
	"github.com/officedesk/officedesk/internal/platform/report"
)

// app holds the open store and the services built on it.
type app struct {
	cfg       *config.Config
	store     *db.Store
	customers *customer.Service
	doctor    *doctor.Service
	schedule  *scheduling.Service
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

// openApp opens the configured store, brings its schema up to date and
// wires the services.
func openApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("dialect", store.Dialect).Str("path", store.Path).Msg("store opened")

	applied, err := db.NewStoreMigrator(store).Up(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	if applied > 0 {
		logger.Info().Int("applied", applied).Msg("migrations applied")
	}
	return newApp(cfg, store), nil
}

func newApp(cfg *config.Config, store *db.Store) *app {
	tx := db.NewTxManager(store.DB)
	return &app{
		cfg:   cfg,
		store: store,
		customers: customer.NewService(
			customer.NewCustomerRepoSQL(store.DB),
			customer.NewTherapyRepoSQL(store.DB),
			tx,
		),
		doctor:   doctor.NewService(doctor.NewProfileRepoSQL(store.DB)),
		schedule: scheduling.NewService(scheduling.NewAppointmentRepoSQL(store.DB), cfg.UpcomingLimit),
	}
}

func (a *app) Close() error {
	return a.store.Close()
}

// newServer builds the echo instance with middleware and every route.
func (a *app) newServer(logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(a.cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(a.cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: a.cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	apiV1 := e.Group("/api/v1")
	customer.NewHandler(a.customers).RegisterRoutes(apiV1)
	doctor.NewHandler(a.doctor).RegisterRoutes(apiV1)
	scheduling.NewHandler(a.schedule).RegisterRoutes(apiV1)
	report.NewHandler(&reportDataFetcher{customers: a.customers, doctor: a.doctor}).RegisterRoutes(apiV1)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(a.store))

	return e
}

// reportDataFetcher implements report.DataFetcher over the customer and
// doctor services.
type reportDataFetcher struct {
	customers *customer.Service
	doctor    *doctor.Service
}

func (f *reportDataFetcher) FetchCustomerRecord(ctx context.Context, id uuid.UUID) (*report.Record, error) {
	c, err := f.customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	therapies, err := f.customers.ListTherapies(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := f.doctor.GetProfile(ctx)
	if errors.Is(err, doctor.ErrProfileNotSet) {
		profile = nil
	} else if err != nil {
		return nil, err
	}
	return &report.Record{Customer: c, Therapies: therapies, Profile: profile}, nil
}
