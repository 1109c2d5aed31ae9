package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iamJABASTIN/attendance-tracker/internal/auth"
	"github.com/iamJABASTIN/attendance-tracker/internal/config"
	"github.com/iamJABASTIN/attendance-tracker/internal/httpmiddleware"
	"github.com/iamJABASTIN/attendance-tracker/internal/record"
	"github.com/iamJABASTIN/attendance-tracker/internal/store"
)

const sessionCookie = "att_session"

//go:embed templates/*.html
var templatesFS embed.FS

// Server is the web presentation adapter: thin handlers mapping routes onto
// the attendance and auth services.
type Server struct {
	Engine  *gin.Engine
	records *record.Service
	auth    *auth.Service
	db      *store.DB
	redis   *store.Redis
	log     zerolog.Logger
	cfg     config.App
}

// New wires the gin engine, middleware and routes. redis may be nil when the
// memory session backend is in use.
func New(records *record.Service, authSvc *auth.Service, db *store.DB, redis *store.Redis, log zerolog.Logger, cfg config.App) *Server {
	s := &Server{
		records: records,
		auth:    authSvc,
		db:      db,
		redis:   redis,
		log:     log,
		cfg:     cfg,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(securityHeaders())
	r.Use(metricsMiddleware())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/dashboard") })
	r.GET("/login", s.handleLoginForm)
	r.POST("/login", httpmiddleware.NewRateLimiter(cfg.LoginRateLimitPerMin, cfg.LoginRateLimitPerMin).GinMiddleware(), s.handleLogin)
	r.GET("/logout", s.handleLogout)

	r.GET("/dashboard", s.handleDashboard)
	r.POST("/records", s.handleCreateRecord)
	r.POST("/records/:id", s.handleUpdateRecord)
	r.DELETE("/records/:id", s.handleDeleteRecordJSON)
	r.POST("/records/:id/delete", s.handleDeleteRecordForm)
	r.GET("/records/search", s.handleSearch)
	r.GET("/api/records/:id", s.handleGetRecord)

	r.GET("/reports", s.handleReportsForm)
	r.POST("/reports/generate", s.handleGenerateReport)

	r.GET("/admin/users", s.handleListUsers)
	r.POST("/admin/register", s.handleRegister)
	r.DELETE("/admin/users/:id", s.handleDeleteUserJSON)
	r.POST("/admin/users/:id/delete", s.handleDeleteUserForm)
	r.POST("/admin/bootstrap", s.handleBootstrap)

	s.Engine = r
	return s
}

func (s *Server) handleHealthz(c *gin.Context) {
	dbHealthy := s.db != nil && s.db.Client.PingContext(c.Request.Context()) == nil
	status := http.StatusOK
	resp := gin.H{"status": "ok", "db": dbHealthy}
	if !dbHealthy {
		status = http.StatusServiceUnavailable
		resp["status"] = "degraded"
	}
	if s.redis != nil {
		redisHealthy := s.redis.Healthy(c.Request.Context())
		resp["redis"] = redisHealthy
		if !redisHealthy {
			status = http.StatusServiceUnavailable
			resp["status"] = "degraded"
		}
	}
	c.JSON(status, resp)
}
