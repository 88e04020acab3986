package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/authsvc/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)

	t.Logf("Livez endpoint is healthy")
}

// TestReadyzEndpoint verifies the readiness check reports the database.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)

	t.Logf("Readyz endpoint is healthy")
}
