package config

import (
	"errors"
	"fmt"
)

// Validate checks the server configuration, joining all problems found.
func (c *ServerConfig) Validate() error {
	var err error
	if c.Name == "" {
		err = errors.Join(err, fmt.Errorf("invalid server config: name is required"))
	}
	if c.Version == "" {
		err = errors.Join(err, fmt.Errorf("invalid server config: version is required"))
	}
	if runtimeErr := c.Runtime.Validate(); runtimeErr != nil {
		err = errors.Join(err, fmt.Errorf("invalid server config, runtime is invalid: %w", runtimeErr))
	}
	return err
}

// Validate checks the runtime configuration.
func (r *ServerRuntime) Validate() error {
	if r == nil {
		return fmt.Errorf("runtime is required")
	}

	var err error
	if r.TransportProtocol != TransportProtocolStdio && r.TransportProtocol != TransportProtocolStreamableHttp {
		err = errors.Join(err, fmt.Errorf(
			"invalid runtime: transport protocol must be one of (%s, %s), received %s",
			TransportProtocolStdio,
			TransportProtocolStreamableHttp,
			r.TransportProtocol,
		))
	}

	if r.TransportProtocol == TransportProtocolStreamableHttp {
		if r.StreamableHTTPConfig == nil {
			err = errors.Join(err, fmt.Errorf(
				"transportProtocol is %s, but streamableHttpConfig is not set",
				TransportProtocolStreamableHttp,
			))
		} else if r.StreamableHTTPConfig.Port <= 0 {
			err = errors.Join(err, fmt.Errorf("streamableHttpConfig.port must be greater than 0"))
		}
	}

	return err
}
