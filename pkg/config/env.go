package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smn2gnt/MCP-Salesforce/pkg/observability/logging"
	"github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"
)

// Environment variables for Salesforce credentials. The OAuth pair takes
// precedence over the username/password/security-token triple.
const (
	EnvAccessToken   = "SALESFORCE_ACCESS_TOKEN"
	EnvInstanceURL   = "SALESFORCE_INSTANCE_URL"
	EnvUsername      = "SALESFORCE_USERNAME"
	EnvPassword      = "SALESFORCE_PASSWORD"
	EnvSecurityToken = "SALESFORCE_SECURITY_TOKEN"
	EnvDomain        = "SALESFORCE_DOMAIN"
)

// Environment variables overriding the runtime configuration.
const (
	EnvTransport  = "SFMCP_TRANSPORT"
	EnvPort       = "SFMCP_PORT"
	EnvBasePath   = "SFMCP_BASE_PATH"
	EnvLogLevel   = "SFMCP_LOG_LEVEL"
	EnvAPIVersion = "SALESFORCE_API_VERSION"
)

// ErrNoCredentials indicates that neither credential set is configured.
var ErrNoCredentials = errors.New("no salesforce credentials configured")

// CredentialKind distinguishes the two supported authentication methods.
type CredentialKind int

const (
	// CredentialOAuth is a pre-obtained access token plus instance URL.
	CredentialOAuth CredentialKind = iota
	// CredentialPassword is a username/password/security-token triple
	// exchanged through the SOAP login endpoint.
	CredentialPassword
)

// Credentials is the resolved credential set.
type Credentials struct {
	Kind CredentialKind

	// OAuth branch.
	AccessToken string
	InstanceURL string

	// Password branch.
	Login salesforce.Credentials
}

// ResolveCredentials reads both candidate credential sets from the
// environment. The OAuth pair wins when complete; otherwise the password
// triple is used; otherwise the error names the missing variables without
// touching the network.
func ResolveCredentials() (*Credentials, error) {
	accessToken := os.Getenv(EnvAccessToken)
	instanceURL := os.Getenv(EnvInstanceURL)

	if accessToken != "" && instanceURL != "" {
		return &Credentials{
			Kind:        CredentialOAuth,
			AccessToken: accessToken,
			InstanceURL: instanceURL,
		}, nil
	}

	username := os.Getenv(EnvUsername)
	password := os.Getenv(EnvPassword)
	securityToken := os.Getenv(EnvSecurityToken)

	if username != "" && password != "" && securityToken != "" {
		return &Credentials{
			Kind: CredentialPassword,
			Login: salesforce.Credentials{
				Username:      username,
				Password:      password,
				SecurityToken: securityToken,
				Domain:        os.Getenv(EnvDomain),
			},
		}, nil
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{EnvAccessToken, accessToken},
		{EnvInstanceURL, instanceURL},
		{EnvUsername, username},
		{EnvPassword, password},
		{EnvSecurityToken, securityToken},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}

	return nil, fmt.Errorf("%w: set %s and %s, or %s, %s and %s (missing: %s)",
		ErrNoCredentials,
		EnvAccessToken, EnvInstanceURL,
		EnvUsername, EnvPassword, EnvSecurityToken,
		strings.Join(missing, ", "))
}

// Connect turns resolved credentials into a connected client. The OAuth
// branch performs no network call; the password branch performs exactly one
// login exchange.
func (c *Credentials) Connect(ctx context.Context, opts ...salesforce.Option) (*salesforce.Client, error) {
	switch c.Kind {
	case CredentialOAuth:
		return salesforce.NewClient(c.InstanceURL, c.AccessToken, opts...), nil
	case CredentialPassword:
		return salesforce.Login(ctx, c.Login, opts...)
	default:
		return nil, fmt.Errorf("unknown credential kind %d", c.Kind)
	}
}

// ApplyEnvOverrides overrides parsed configuration from the environment.
// Malformed values are reported but never fatal; the caller logs and
// continues with the file-based settings.
func (c *ServerConfig) ApplyEnvOverrides() error {
	var err error

	if v := os.Getenv(EnvTransport); v != "" {
		c.Runtime.TransportProtocol = strings.ToLower(v)
		if c.Runtime.TransportProtocol == TransportProtocolStreamableHttp && c.Runtime.StreamableHTTPConfig == nil {
			c.Runtime.StreamableHTTPConfig = &StreamableHTTPConfig{}
			c.Runtime.StreamableHTTPConfig.ApplyDefaults()
		}
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, parseErr := strconv.Atoi(v)
		if parseErr != nil {
			err = errors.Join(err, fmt.Errorf("invalid %s value %q: %w", EnvPort, v, parseErr))
		} else if c.Runtime.StreamableHTTPConfig != nil {
			c.Runtime.StreamableHTTPConfig.Port = port
		}
	}

	if v := os.Getenv(EnvBasePath); v != "" && c.Runtime.StreamableHTTPConfig != nil {
		c.Runtime.StreamableHTTPConfig.BasePath = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		if c.Runtime.LoggingConfig == nil {
			c.Runtime.LoggingConfig = &logging.LoggingConfig{Encoding: "console"}
		}
		c.Runtime.LoggingConfig.Level = v
	}

	if v := os.Getenv(EnvAPIVersion); v != "" {
		c.Salesforce.APIVersion = v
	}

	return err
}
