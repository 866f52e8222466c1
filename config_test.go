package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		bind:           "0.0.0.0",
		flatBonus:      1,
		masterPassword: "quiz",
		port:           8080,
		startingPoints: 5,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().validate())

	cfg := validConfig()
	cfg.port = 0
	require.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.tlsCert = "cert.pem"
	require.Error(t, cfg.validate())
	cfg.tlsKey = "key.pem"
	require.NoError(t, cfg.validate())
	require.Equal(t, "https", cfg.scheme())

	cfg = validConfig()
	cfg.masterPassword = ""
	require.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.startingPoints = -1
	require.Error(t, cfg.validate())

	cfg = validConfig()
	cfg.flatBonus = -1
	require.Error(t, cfg.validate())
}

func TestConfigScheme(t *testing.T) {
	require.Equal(t, "http", validConfig().scheme())
}
