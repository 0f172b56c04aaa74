package server

import (
	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/documents"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/tools"
	"resume-ats/internal/uploads"
)

// toolBodyLimit caps tool call payloads; resume text arrives inline.
const toolBodyLimit = 2 << 20

// RouterDeps carries the handlers the router mounts. Uploads is nil when the
// object store cannot issue direct-upload URLs.
type RouterDeps struct {
	Config    config.Config
	Verifier  middleware.TokenVerifier
	Health    *health.Service
	Tools     *tools.Handler
	Documents *documents.Handler
	Analyses  *analyses.Handler
	Uploads   *uploads.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", deps.Health.Handler())
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", deps.Health.Handler())

	open := api.Group("", middleware.Auth(deps.Verifier, false))
	registerMeRoutes(open)
	deps.Tools.RegisterRoutes(open,
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: deps.Config.ToolsRPS, Burst: deps.Config.ToolsBurst},
			},
		}),
		middleware.BodyLimit(toolBodyLimit),
	)

	owned := api.Group("", middleware.Auth(deps.Verifier, true))
	deps.Documents.RegisterRoutes(owned)
	deps.Analyses.RegisterRoutes(owned)
	if deps.Uploads != nil {
		deps.Uploads.RegisterRoutes(owned)
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
