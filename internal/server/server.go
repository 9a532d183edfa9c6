// Package server exposes the proof relay over HTTP: it validates inbound
// submissions, hands them to the proving collaborator, binds the returned
// artifact to the request, and records accepted results.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/typeproof/typeproof/internal/binding"
	"github.com/typeproof/typeproof/internal/logger"
	"github.com/typeproof/typeproof/internal/prover"
	"github.com/typeproof/typeproof/internal/store"
	"github.com/typeproof/typeproof/internal/validator"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typeproof_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "typeproof_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typeproof_submissions_total",
			Help: "Submission outcomes by result",
		},
		[]string{"result"},
	)
)

// Options configures the relay server.
type Options struct {
	Host      string
	Port      int
	RateLimit int
	Limits    validator.Limits
	// MaxSealBytes bounds the artifact seal before relay.
	MaxSealBytes int
	// ProveTimeout bounds a single proving call; zero means no timeout.
	ProveTimeout time.Duration
}

// Server wires the validator, prover, and binding checker behind gin.
type Server struct {
	opts      Options
	validator *validator.Validator
	checker   *binding.Checker
	prover    prover.Prover
	store     *store.Store
	log       *logger.Logger
	router    *gin.Engine
	server    *http.Server
	limiter   *rate.Limiter
}

// New creates a relay server. The store may be nil when persistence is not
// wanted; everything else is required.
func New(opts Options, pv prover.Prover, st *store.Store, log *logger.Logger) *Server {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10 // proving is expensive; keep the default low
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		opts:      opts,
		validator: validator.New(opts.Limits),
		checker:   binding.NewChecker(opts.MaxSealBytes),
		prover:    pv,
		store:     st,
		log:       log,
		router:    router,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateLimit*2),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": "Too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		s.log.Info("API request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"ip", c.ClientIP(),
		)

		apiRequestsTotal.WithLabelValues(c.Request.Method, path, fmt.Sprintf("%d", status)).Inc()
		apiRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration.Seconds())
	})
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/submit", s.handleSubmit)
		v1.GET("/leaderboard/:challenge_id", s.handleLeaderboard)
		v1.GET("/submissions/recent", s.handleRecent)
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener fails or is closed.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.opts.Host, s.opts.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("Relay server listening", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
