package server

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/shellfs/internal/api/http"
	"github.com/GriffinCanCode/shellfs/internal/api/middleware"
	"github.com/GriffinCanCode/shellfs/internal/infrastructure/config"
	"github.com/GriffinCanCode/shellfs/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/remote/caps"
	"github.com/GriffinCanCode/shellfs/internal/remote/fs"
	"github.com/GriffinCanCode/shellfs/internal/remote/transport"
	"github.com/GriffinCanCode/shellfs/internal/remote/tree"
)

// Server wires the transport, tree cache, facade and HTTP surface together.
type Server struct {
	router *gin.Engine
	runner transport.Runner
	log    *logging.Logger
}

// New assembles a server from configuration.
func New(cfg *config.Config, log *logging.Logger) (*Server, error) {
	runner, err := newRunner(cfg.Target, log)
	if err != nil {
		return nil, fmt.Errorf("connect target: %w", err)
	}

	metrics := monitoring.NewMetrics()
	cache := tree.New(tree.NewShellLister(runner), log)
	resolver := caps.NewResolver(runner, cfg.Target.ProbeTool, log)

	service := fs.New(fs.Config{
		Runner:     runner,
		Tree:       cache,
		Caps:       resolver,
		Logger:     log,
		Metrics:    metrics,
		RootCreate: cfg.Target.RootCreate,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(monitoring.Middleware(metrics))

	handlers := api.NewHandlers(service)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/fs/files", handlers.CreateFile)
	router.POST("/fs/directories", handlers.CreateDirectory)
	router.GET("/fs/exists", handlers.Exists)
	router.POST("/fs/copy", handlers.Copy)
	router.POST("/fs/move", handlers.Move)
	router.POST("/fs/chmod", handlers.Chmod)
	router.DELETE("/fs", handlers.Delete)

	router.POST("/mounts", handlers.Mount)
	router.DELETE("/mounts", handlers.Unmount)
	router.GET("/mounts", handlers.ListMounts)
	router.GET("/mounts/readonly", handlers.MountReadOnly)
	router.GET("/devices/blocks", handlers.DeviceBlocks)

	return &Server{router: router, runner: runner, log: log}, nil
}

// newRunner selects the transport from configuration.
func newRunner(cfg config.TargetConfig, log *logging.Logger) (transport.Runner, error) {
	switch cfg.Mode {
	case "ssh":
		var key []byte
		if cfg.KeyPath != "" {
			var err error
			key, err = os.ReadFile(cfg.KeyPath)
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
		}
		return transport.NewSSH(transport.SSHConfig{
			Address:     cfg.Address,
			User:        cfg.User,
			Password:    cfg.Password,
			KeyPEM:      key,
			RootCommand: cfg.RootCommand,
		}, log)
	case "local":
		return transport.NewLocal(transport.LocalConfig{
			RootCommand: cfg.RootCommand,
			UsePTY:      cfg.UsePTY,
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown target mode %q", cfg.Mode)
	}
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run(addr string) error {
	s.log.Info("server listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close releases the target connection.
func (s *Server) Close(ctx context.Context) error {
	return s.runner.Close()
}
