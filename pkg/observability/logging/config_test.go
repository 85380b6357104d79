package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseDefaults(t *testing.T) {
	cfg := &LoggingConfig{}
	logger, err := cfg.BuildBase()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestBuildBaseLevels(t *testing.T) {
	tt := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "error", level: "error"},
		{name: "invalid", level: "loud", wantErr: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &LoggingConfig{Level: tc.level}
			logger, err := cfg.BuildBase()
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid log level")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
		})
	}
}

func TestToZapConfigEncoding(t *testing.T) {
	consoleCfg := &LoggingConfig{Encoding: "console"}
	zc, err := consoleCfg.toZapConfig()
	require.NoError(t, err)
	assert.Equal(t, "console", zc.Encoding)

	jsonCfg := &LoggingConfig{Encoding: "json"}
	zc, err = jsonCfg.toZapConfig()
	require.NoError(t, err)
	assert.Equal(t, "json", zc.Encoding)
}

func TestToZapConfigInitialFields(t *testing.T) {
	cfg := &LoggingConfig{
		InitialFields: map[string]interface{}{"service": "salesforce-mcp"},
	}
	zc, err := cfg.toZapConfig()
	require.NoError(t, err)
	assert.Equal(t, "salesforce-mcp", zc.InitialFields["service"])
}
