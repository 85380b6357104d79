// Package config holds the server runtime configuration and the Salesforce
// credential resolver.
package config

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/observability/logging"
)

const (
	TransportProtocolStreamableHttp = "streamablehttp"
	TransportProtocolStdio          = "stdio"
)

// ServerConfig is the top-level server configuration, typically parsed from
// a YAML file and optionally overridden from the environment.
type ServerConfig struct {
	// Name reported in the MCP initialize handshake.
	Name string `json:"name,omitempty"`

	// Version reported in the MCP initialize handshake.
	Version string `json:"version,omitempty"`

	// Runtime selects the transport protocol and its settings.
	Runtime *ServerRuntime `json:"runtime,omitempty"`

	// Salesforce tunes the outbound Salesforce client.
	Salesforce *SalesforceConfig `json:"salesforce,omitempty"`
}

// ServerRuntime defines transport protocol and associated configuration.
type ServerRuntime struct {
	// Transport protocol to use (streamablehttp or stdio).
	TransportProtocol string `json:"transportProtocol,omitempty"`

	// Configuration for streamable HTTP transport protocol.
	StreamableHTTPConfig *StreamableHTTPConfig `json:"streamableHttpConfig,omitempty"`

	// Configuration for the server logging.
	LoggingConfig *logging.LoggingConfig `json:"loggingConfig,omitempty"`

	baseLogger     *zap.Logger
	initLoggerOnce sync.Once
}

// StreamableHTTPConfig defines configuration for the HTTP-based runtime.
type StreamableHTTPConfig struct {
	// Port number to listen on.
	Port int `json:"port,omitempty"`

	// Base path for the MCP server (default: /mcp).
	BasePath string `json:"basePath,omitempty"`

	// Indicates whether the server is stateless (default: true when unset).
	Stateless *bool `json:"stateless,omitempty"`

	// TLS configuration for HTTPS.
	TLS *TLSConfig `json:"tls,omitempty"`

	// Health check configuration for k8s probes.
	Health *HealthConfig `json:"health,omitempty"`
}

// TLSConfig defines paths to TLS certificate and private key files.
type TLSConfig struct {
	CertFile string `json:"certFile,omitempty"`
	KeyFile  string `json:"keyFile,omitempty"`
}

// HealthConfig configures the liveness/readiness endpoints of the HTTP runtime.
type HealthConfig struct {
	// Enable health endpoints (default: true when running HTTP).
	Enabled *bool `json:"enabled,omitempty"`

	// Path for liveness probe (default: /healthz).
	LivenessPath string `json:"livenessPath,omitempty"`

	// Path for readiness probe (default: /readyz).
	ReadinessPath string `json:"readinessPath,omitempty"`
}

// SalesforceConfig tunes the outbound Salesforce client.
type SalesforceConfig struct {
	// APIVersion is the Salesforce API version, e.g. "59.0".
	APIVersion string `json:"apiVersion,omitempty"`
}

// GetBaseLogger returns the base logger for the server, building it once
// from LoggingConfig. A broken logging config falls back to a console
// logger so startup problems stay visible, and a nil runtime yields a
// no-op logger.
func (sr *ServerRuntime) GetBaseLogger() *zap.Logger {
	if sr == nil {
		return zap.NewNop()
	}

	sr.initLoggerOnce.Do(func() {
		cfg := sr.LoggingConfig
		if cfg == nil {
			cfg = &logging.LoggingConfig{Encoding: "console"}
		}

		logger, err := cfg.BuildBase()
		if err != nil || logger == nil {
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: failed to build base logger, using default console logger: %v\n", err)
			}
			fallback := zap.NewDevelopmentConfig()
			fallback.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
			logger, _ = fallback.Build()
			if logger == nil {
				logger = zap.NewNop()
			}
		}
		sr.baseLogger = logger
	})

	return sr.baseLogger
}

// StatelessOrDefault reports whether the HTTP runtime is stateless,
// defaulting to true when unset.
func (s *StreamableHTTPConfig) StatelessOrDefault() bool {
	if s == nil || s.Stateless == nil {
		return true
	}
	return *s.Stateless
}

// EnabledOrDefault reports whether health endpoints are enabled, defaulting
// to true when unset.
func (h *HealthConfig) EnabledOrDefault() bool {
	if h == nil || h.Enabled == nil {
		return true
	}
	return *h.Enabled
}
