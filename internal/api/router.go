package api

import (
	"regexp"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/nik0sc/esc-ticket-service/docs"
	"github.com/nik0sc/esc-ticket-service/internal/api/handler"
	"github.com/nik0sc/esc-ticket-service/internal/api/middleware"
	"github.com/nik0sc/esc-ticket-service/internal/core/ports"
	"github.com/nik0sc/esc-ticket-service/internal/core/service"
	mongostore "github.com/nik0sc/esc-ticket-service/internal/infrastructure/db/mongo"
	redisstore "github.com/nik0sc/esc-ticket-service/internal/infrastructure/db/redis"
	"github.com/nik0sc/esc-ticket-service/internal/upstream"
)

const serviceName = "esc-ticket-service"

// allowedOrigins is the XHR origin whitelist: local development on any port
// and the deployed frontend.
var allowedOrigins = []*regexp.Regexp{
	regexp.MustCompile(`^http://localhost(:\d+)?$`),
	regexp.MustCompile(`^https://(frontend\.)?ticket\.lepak\.sg$`),
}

// RouterDeps carries the long-lived collaborators the router wires together.
// All of them are read-only after initialization and shared by every
// in-flight request.
type RouterDeps struct {
	DB       *mongo.Database
	Redis    *redis.Client
	Sessions ports.SessionVerifier
	Roles    ports.RoleResolver
	GitRev   string
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ticket"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: originAllowed,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			"X-Requested-With",
			upstream.HeaderSessionToken,
		},
	}))

	// --- Dependencies ---
	ticketRepo := mongostore.NewTicketRepository(deps.DB)
	idemStore := redisstore.NewIdempotencyStore(deps.Redis)
	accessPolicy := service.NewAccessPolicy(deps.Roles, deps.Log)
	ticketService := service.NewTicketService(ticketRepo, accessPolicy, idemStore, deps.Log)

	ticketHandler := handler.NewTicketHandler(ticketService)
	infoHandler := handler.NewInfoHandler(serviceName, deps.GitRev)
	sessionRequired := middleware.Session(deps.Sessions)

	// --- Service info (no auth required) ---
	e.GET("/", infoHandler.Info)
	e.GET("/version", infoHandler.Info)

	// --- Ticket routes ---
	tickets := e.Group("/ticket", sessionRequired)
	tickets.GET("", ticketHandler.GetAll)
	tickets.GET("/byUser", ticketHandler.GetMine)
	tickets.GET("/byTeam/:teamId", ticketHandler.GetByTeam)
	tickets.GET("/:id", ticketHandler.GetByID)
	tickets.POST("", ticketHandler.Create)
	tickets.PUT("/:id", ticketHandler.Update)
	tickets.PUT("/:id/protected", ticketHandler.UpdateProtected)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

func originAllowed(origin string) (bool, error) {
	for _, re := range allowedOrigins {
		if re.MatchString(origin) {
			return true, nil
		}
	}
	return false, nil
}
