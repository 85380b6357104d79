package config

import "github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"

// Default values for server configuration.
const (
	// DefaultServerName is the implementation name reported to MCP clients.
	DefaultServerName = "salesforce-mcp"

	// DefaultServerVersion is reported when no version is configured.
	DefaultServerVersion = "0.2.3"

	// DefaultBasePath is the default base path for the MCP server.
	DefaultBasePath = "/mcp"

	// DefaultPort is the default port for the streamable HTTP server.
	DefaultPort = 8080

	// DefaultLivenessPath is the default path for the liveness probe endpoint.
	DefaultLivenessPath = "/healthz"

	// DefaultReadinessPath is the default path for the readiness probe endpoint.
	DefaultReadinessPath = "/readyz"
)

// ApplyDefaults applies default values to the ServerConfig after parsing.
func (c *ServerConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultServerName
	}
	if c.Version == "" {
		c.Version = DefaultServerVersion
	}
	if c.Runtime == nil {
		c.Runtime = &ServerRuntime{}
	}
	c.Runtime.ApplyDefaults()

	if c.Salesforce == nil {
		c.Salesforce = &SalesforceConfig{}
	}
	if c.Salesforce.APIVersion == "" {
		c.Salesforce.APIVersion = salesforce.DefaultAPIVersion
	}
}

// ApplyDefaults applies default values to ServerRuntime.
func (r *ServerRuntime) ApplyDefaults() {
	if r.TransportProtocol == "" {
		r.TransportProtocol = TransportProtocolStdio
	}

	if r.TransportProtocol == TransportProtocolStreamableHttp {
		if r.StreamableHTTPConfig == nil {
			r.StreamableHTTPConfig = &StreamableHTTPConfig{}
		}
		r.StreamableHTTPConfig.ApplyDefaults()
	}
}

// ApplyDefaults applies default values to StreamableHTTPConfig.
func (s *StreamableHTTPConfig) ApplyDefaults() {
	if s.Port <= 0 {
		s.Port = DefaultPort
	}
	if s.BasePath == "" {
		s.BasePath = DefaultBasePath
	}
	if s.Stateless == nil {
		stateless := true
		s.Stateless = &stateless
	}

	if s.Health == nil {
		s.Health = &HealthConfig{}
	}
	s.Health.ApplyDefaults()
}

// ApplyDefaults applies default values to HealthConfig.
func (h *HealthConfig) ApplyDefaults() {
	if h.Enabled == nil {
		enabled := true
		h.Enabled = &enabled
	}
	if h.LivenessPath == "" {
		h.LivenessPath = DefaultLivenessPath
	}
	if h.ReadinessPath == "" {
		h.ReadinessPath = DefaultReadinessPath
	}
}
