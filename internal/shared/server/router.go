package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-parser/internal/auth"
	"resume-parser/internal/parser"
	"resume-parser/internal/profiles"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/middleware"
	"resume-parser/internal/shared/server/respond"
	"resume-parser/internal/stats"
)

// Deps are the wired handlers the router mounts.
type Deps struct {
	Config     config.Config
	Parse      *parser.Handler
	Stats      *stats.Handler
	Profiles   *profiles.Handler
	GoogleAuth *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
	)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.Parse != nil {
		parseGroup := api.Group("")
		parseGroup.Use(middleware.RateLimit(middleware.RateLimitRule{
			Rate:  deps.Config.ParseRateLimit,
			Burst: deps.Config.ParseRateBurst,
		}, middleware.NewRateLimiter(nil)))
		deps.Parse.Register(parseGroup)
	}
	if deps.Stats != nil {
		deps.Stats.Register(api)
	}
	if deps.Profiles != nil {
		deps.Profiles.Register(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
