package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/uibridge/uibridge/internal/agent"
	"github.com/uibridge/uibridge/internal/config"
	"github.com/uibridge/uibridge/internal/uistream"
)

// Server hosts the agent and conversion endpoints.
type Server struct {
	config    *config.Config
	agent     *agent.Agent
	converter *uistream.StreamConverter
	engine    *gin.Engine

	httpServer *http.Server
	watcher    *config.Watcher

	version   string
	hotReload bool
}

// ServerOption defines a functional option for Server configuration
type ServerOption func(*Server)

// WithDefault provides the default option set.
func WithDefault() ServerOption {
	return func(s *Server) {
		s.version = "dev"
		s.hotReload = true
	}
}

// WithVersion sets the version string reported by the info endpoint.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithHotReload toggles the config file watcher.
func WithHotReload(enabled bool) ServerOption {
	return func(s *Server) {
		s.hotReload = enabled
	}
}

func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	server := &Server{
		config:    cfg,
		agent:     agent.New(cfg),
		converter: uistream.NewStreamConverter(),
		engine:    gin.New(),
	}

	allOpts := append([]ServerOption{WithDefault()}, opts...)
	for _, opt := range allOpts {
		opt(server)
	}

	server.setupMiddleware()
	server.setupRoutes()
	if server.hotReload {
		server.setupConfigWatcher()
	}

	return server
}

func (s *Server) setupMiddleware() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(RequestLogger())
	s.engine.Use(CORSMiddleware())
}

// setupRoutes configures server routes
func (s *Server) setupRoutes() {
	s.engine.GET("/", s.handleRoot)
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/agent", s.handleAgent)
	s.engine.POST("/agent/stream", s.handleAgentStream)
	s.engine.POST("/history", s.handleHistory)
}

// setupConfigWatcher initializes the configuration hot-reload watcher.
func (s *Server) setupConfigWatcher() {
	if s.config.ConfigFile == "" {
		return
	}

	watcher, err := config.NewWatcher(s.config)
	if err != nil {
		logrus.Warnf("Failed to create config watcher: %v", err)
		return
	}

	watcher.AddCallback(func(fresh *config.Config) {
		s.agent.SetConfig(fresh)
	})
	s.watcher = watcher
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			logrus.Warnf("Failed to start config watcher: %v", err)
		} else {
			logrus.Info("Configuration hot-reload enabled")
		}
	}

	addr := s.config.Addr()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	logrus.Infof("Agent endpoint: http://%s/agent", addr)
	logrus.Infof("Stream endpoint: http://%s/agent/stream", addr)
	logrus.Infof("History endpoint: http://%s/history", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the watcher and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			logrus.Warnf("Failed to stop config watcher: %v", err)
		}
	}
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
