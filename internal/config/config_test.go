package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BUYLINK_API_BASE_URL", "http://api.local:17788/")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", c.HTTPAddr)
	require.Equal(t, "http://api.local:17788", c.APIBaseURL, "trailing slash must be trimmed")
	require.False(t, c.IsProd())
}

func TestLoadRejectsEmptyAPIBase(t *testing.T) {
	t.Setenv("BUYLINK_API_BASE_URL", "   ")

	_, err := Load()
	require.Error(t, err)
}

func TestIsProd(t *testing.T) {
	t.Setenv("BUYLINK_API_BASE_URL", "http://api.local")
	t.Setenv("BUYLINK_WEB_ENV", "PROD")

	c, err := Load()
	require.NoError(t, err)
	require.True(t, c.IsProd())
}
