// Package api assembles the HTTP server: middleware, the huma-described
// search API, operational endpoints and development docs.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/property-search/api/openapi"
	"github.com/donaldgifford/property-search/internal/api/handlers"
	"github.com/donaldgifford/property-search/internal/api/middleware"
	"github.com/donaldgifford/property-search/internal/boom"
	"github.com/donaldgifford/property-search/internal/cities"
	"github.com/donaldgifford/property-search/internal/store"
)

const openAPIPath = "/api/v1/openapi"

// RouterConfig holds everything the router needs.
type RouterConfig struct {
	Title   string
	Version string

	// Development enables the Swagger UI.
	Development bool

	Searcher boom.HouseSearcher
	Cities   *cities.Allowlist

	// DB is pinged by /readyz. Nil when no database is configured.
	DB store.Pinger

	Logger *slog.Logger
}

// NewRouter builds the echo instance serving the API.
func NewRouter(cfg RouterConfig) *echo.Echo {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(log)

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.Recovery(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}))

	health := handlers.NewHealthHandler(cfg.DB)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	hcfg := huma.DefaultConfig(cfg.Title, cfg.Version)
	hcfg.Info.Description = "Searches property listings by city through the Boom API."
	hcfg.OpenAPIPath = openAPIPath
	hcfg.SchemasPath = "/api/v1/schemas"
	hcfg.DocsPath = ""
	// Responses are plain envelopes; no $schema links.
	hcfg.CreateHooks = nil

	humaAPI := humaecho.New(e, hcfg)
	handlers.RegisterSearchRoutes(humaAPI, handlers.NewSearchHandler(cfg.Searcher, cfg.Cities, log))
	handlers.RegisterCitiesRoutes(humaAPI, handlers.NewCitiesHandler(cfg.Cities))

	if cfg.Development {
		openapi.RegisterRoutes(e, cfg.Title, openAPIPath+".json")
	}

	return e
}
