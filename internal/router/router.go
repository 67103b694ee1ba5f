package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	docs "github.com/vending-machines/backend/api"
	"github.com/vending-machines/backend/internal/auth"
	"github.com/vending-machines/backend/internal/config"
	"github.com/vending-machines/backend/internal/controllers/healthz"
	"github.com/vending-machines/backend/internal/controllers/root"
	v1 "github.com/vending-machines/backend/internal/controllers/v1"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and its middlewares. The returned function
// unregisters the Prometheus metrics and must be called when the router
// is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	url := cfg.APIURL

	if err := registerPrometheusMetrics(); err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister Prometheus metrics")
		}
	}

	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(URLMiddleware(&url))
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "this HTTP method is not allowed for the endpoint you called",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("CORS Allowed Origins", cfg.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// pprof performance profiles
	if cfg.EnablePprof {
		pprof.Register(r)
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Vending Machines"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for the operation of vending machine networks: devices, companies, sales, monitoring and device imports."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases.
func AttachRoutes(co v1.Controller, group *gin.RouterGroup) {
	root.RegisterRoutes(group.Group(""))
	root.RegisterVersionRoutes(group.Group("/version"), version)
	healthz.Controller{DB: co.DB}.RegisterRoutes(group.Group("/healthz"))

	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	public := group.Group("/v1")
	v1.RegisterRootRoutes(public)
	co.RegisterAuthRoutes(public.Group("/auth"))

	// All other routes need a valid token
	authenticated := group.Group("/v1", auth.Middleware(co.Tokens))
	co.RegisterLookupRoutes(authenticated.Group("/lookups"))
	co.RegisterCompanyRoutes(authenticated.Group("/companies"))
	co.RegisterDeviceRoutes(authenticated.Group("/devices"))
	co.RegisterDeviceImportRoutes(authenticated.Group("/device-import"))
	co.RegisterEventRoutes(authenticated.Group("/events"))
	co.RegisterContractRoutes(authenticated.Group("/contracts"))
	co.RegisterProductRoutes(authenticated.Group("/products"))
	co.RegisterSaleRoutes(authenticated.Group("/sales"))
	co.RegisterBookingRoutes(authenticated.Group("/bookings"))
	co.RegisterMonitoringRoutes(authenticated.Group("/monitoring"))
	co.RegisterGenerateRoutes(authenticated.Group("/generate"))
}
