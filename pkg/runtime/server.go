// Package runtime starts the MCP server on the configured transport.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/config"
	"github.com/smn2gnt/MCP-Salesforce/pkg/health"
	"github.com/smn2gnt/MCP-Salesforce/pkg/observability/logging"
	"github.com/smn2gnt/MCP-Salesforce/pkg/tools"
)

// Server bundles the MCP server with the pieces the transports need.
type Server struct {
	cfg     *config.ServerConfig
	mcp     *mcp.Server
	checker *health.Checker
}

// NewServer builds the MCP server and registers every Salesforce tool on it.
func NewServer(cfg *config.ServerConfig, svc *tools.Service, checker *health.Checker) *Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s.AddReceivingMiddleware(logging.WithLoggingMiddleware(cfg.Runtime.GetBaseLogger()))
	svc.RegisterAll(s)

	return &Server{cfg: cfg, mcp: s, checker: checker}
}

// Run starts the server on the transport selected in the runtime config and
// blocks until the context is cancelled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	logger := s.cfg.Runtime.GetBaseLogger()
	logger.Info("Starting MCP server",
		zap.String("server_name", s.cfg.Name),
		zap.String("server_version", s.cfg.Version),
		zap.String("transport_protocol", s.cfg.Runtime.TransportProtocol))

	switch strings.ToLower(s.cfg.Runtime.TransportProtocol) {
	case config.TransportProtocolStreamableHttp:
		logger.Info("Running server with streamable HTTP transport")
		return s.runStreamableHttp(ctx)
	case config.TransportProtocolStdio:
		logger.Info("Running server with stdio transport")
		return s.runStdio(ctx)
	default:
		logger.Error("Invalid transport protocol specified",
			zap.String("transport_protocol", s.cfg.Runtime.TransportProtocol))
		return fmt.Errorf("tried running invalid transport protocol")
	}
}

func (s *Server) runStdio(ctx context.Context) error {
	logger := s.cfg.Runtime.GetBaseLogger()

	logger.Info("Starting stdio server")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Error("Stdio server failed", zap.Error(err))
		return err
	}

	logger.Info("Stdio server completed")
	return nil
}

func (s *Server) runStreamableHttp(ctx context.Context) error {
	logger := s.cfg.Runtime.GetBaseLogger()
	httpConfig := s.cfg.Runtime.StreamableHTTPConfig
	port := httpConfig.Port
	basePath := httpConfig.BasePath
	stateless := httpConfig.StatelessOrDefault()

	logger.Info("Setting up streamable HTTP server",
		zap.Int("port", port),
		zap.String("base_path", basePath),
		zap.Bool("stateless", stateless))

	mux := http.NewServeMux()

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{
		Stateless: stateless,
	})
	mux.Handle(basePath, handler)
	logger.Debug("Registered MCP handler", zap.String("path", basePath))

	if httpConfig.Health.EnabledOrDefault() && s.checker != nil {
		livenessPath, readinessPath := config.DefaultLivenessPath, config.DefaultReadinessPath
		if httpConfig.Health != nil {
			if httpConfig.Health.LivenessPath != "" {
				livenessPath = httpConfig.Health.LivenessPath
			}
			if httpConfig.Health.ReadinessPath != "" {
				readinessPath = httpConfig.Health.ReadinessPath
			}
		}
		mux.HandleFunc(livenessPath, s.checker.LivenessHandler)
		mux.HandleFunc(readinessPath, s.checker.ReadinessHandler)
		logger.Debug("Registered health handlers",
			zap.String("liveness_path", livenessPath),
			zap.String("readiness_path", readinessPath))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	logger.Info(fmt.Sprintf("Starting MCP server on port %d", port))

	errCh := make(chan error, 1)
	go func() {
		var err error
		if httpConfig.TLS != nil {
			logger.Info("Starting HTTPS server with TLS",
				zap.String("cert_file", httpConfig.TLS.CertFile),
				zap.String("key_file", httpConfig.TLS.KeyFile))
			err = srv.ListenAndServeTLS(httpConfig.TLS.CertFile, httpConfig.TLS.KeyFile)
		} else {
			logger.Info("Starting HTTP server")
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal, shutting down HTTP server gracefully")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
			return err
		}
		logger.Info("HTTP server shutdown completed")
		return nil
	case err := <-errCh:
		logger.Error("HTTP server failed", zap.Error(err))
		return err
	}
}
