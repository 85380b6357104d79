package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{EnvAccessToken, EnvInstanceURL, EnvUsername, EnvPassword, EnvSecurityToken, EnvDomain} {
		t.Setenv(v, "")
	}
}

func TestResolveCredentialsOAuthWins(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvAccessToken, "00Daccesstoken")
	t.Setenv(EnvInstanceURL, "https://example.my.salesforce.com")
	// A complete password triple must not override the OAuth pair.
	t.Setenv(EnvUsername, "user@example.com")
	t.Setenv(EnvPassword, "hunter2")
	t.Setenv(EnvSecurityToken, "TOKEN")

	creds, err := ResolveCredentials()
	require.NoError(t, err)

	assert.Equal(t, CredentialOAuth, creds.Kind)
	assert.Equal(t, "00Daccesstoken", creds.AccessToken)
	assert.Equal(t, "https://example.my.salesforce.com", creds.InstanceURL)
}

func TestResolveCredentialsPasswordTriple(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv(EnvUsername, "user@example.com")
	t.Setenv(EnvPassword, "hunter2")
	t.Setenv(EnvSecurityToken, "TOKEN")
	t.Setenv(EnvDomain, "test")

	creds, err := ResolveCredentials()
	require.NoError(t, err)

	assert.Equal(t, CredentialPassword, creds.Kind)
	assert.Equal(t, "user@example.com", creds.Login.Username)
	assert.Equal(t, "TOKEN", creds.Login.SecurityToken)
	assert.Equal(t, "test", creds.Login.Domain)
}

func TestResolveCredentialsIncompletePairFallsThrough(t *testing.T) {
	clearCredentialEnv(t)
	// Access token without instance URL is not usable.
	t.Setenv(EnvAccessToken, "00Daccesstoken")
	t.Setenv(EnvUsername, "user@example.com")
	t.Setenv(EnvPassword, "hunter2")
	t.Setenv(EnvSecurityToken, "TOKEN")

	creds, err := ResolveCredentials()
	require.NoError(t, err)
	assert.Equal(t, CredentialPassword, creds.Kind)
}

func TestResolveCredentialsMissingEverything(t *testing.T) {
	clearCredentialEnv(t)

	_, err := ResolveCredentials()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoCredentials)
	// The error must name at least one missing variable so the operator can
	// fix the environment.
	assert.Contains(t, err.Error(), EnvAccessToken)
	assert.Contains(t, err.Error(), EnvUsername)
}

func TestConnectOAuthPerformsNoNetworkCall(t *testing.T) {
	creds := &Credentials{
		Kind:        CredentialOAuth,
		AccessToken: "00Daccesstoken",
		InstanceURL: "https://example.my.salesforce.com",
	}

	// No HTTP server is running anywhere; a network call would fail.
	client, err := creds.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.my.salesforce.com", client.InstanceURL())
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvTransport, "streamablehttp")
	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvBasePath, "/salesforce")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAPIVersion, "60.0")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnvOverrides())

	assert.Equal(t, TransportProtocolStreamableHttp, cfg.Runtime.TransportProtocol)
	require.NotNil(t, cfg.Runtime.StreamableHTTPConfig)
	assert.Equal(t, 9090, cfg.Runtime.StreamableHTTPConfig.Port)
	assert.Equal(t, "/salesforce", cfg.Runtime.StreamableHTTPConfig.BasePath)
	assert.Equal(t, "debug", cfg.Runtime.LoggingConfig.Level)
	assert.Equal(t, "60.0", cfg.Salesforce.APIVersion)
}

func TestApplyEnvOverridesBadPortIsNotFatal(t *testing.T) {
	t.Setenv(EnvTransport, "streamablehttp")
	t.Setenv(EnvPort, "not-a-port")

	cfg := Default()
	err := cfg.ApplyEnvOverrides()
	require.Error(t, err)

	// The transport override still applied; the port kept its default.
	assert.Equal(t, TransportProtocolStreamableHttp, cfg.Runtime.TransportProtocol)
	assert.Equal(t, DefaultPort, cfg.Runtime.StreamableHTTPConfig.Port)
}
