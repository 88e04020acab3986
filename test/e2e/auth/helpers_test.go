package auth_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/authsvc/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, account helpers, and assertions.
 */

const (
	testImageName = "authsvc-test:latest"

	tokenSecret = "e2e-signing-secret-0123456789"
	testIssuer  = "authsvc-e2e"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	if _, err := exec.LookPath("docker"); err != nil {
		fmt.Fprintln(os.Stdout, "docker not found, skipping auth service e2e tests")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image from the repository root.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupAuthContainer starts the auth service in a container and returns the base URL.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()
	return setupAuthContainerWithEnv(t, nil)
}

// setupAuthContainerWithEnv starts the service with extra environment
// variables layered over the test defaults.
func setupAuthContainerWithEnv(t *testing.T, extra map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"AUTH_TOKEN_SECRET":  tokenSecret,
		"AUTH_ISSUER":        testIssuer,
		"AUTH_DATABASE_FILE": "/data/auth.db",
		"ENV":                "test",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
	}
	for k, v := range extra {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// registerUser creates an account and checks the response shape.
func registerUser(t *testing.T, client *authsdk.SDKClient, username, email, password string) *authsdk.AuthResponse {
	t.Helper()

	res, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err, "Register should succeed")
	assertAuthResponse(t, res)
	require.Equal(t, username, res.User.Username)
	require.Equal(t, email, res.User.Email)

	return res
}

// assertAuthResponse verifies an auth response has all required fields.
func assertAuthResponse(t *testing.T, res *authsdk.AuthResponse) {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Token, "Token should not be empty")
	require.NotEmpty(t, res.User.ID, "User ID should not be empty")
	require.False(t, res.User.CreatedAt.IsZero(), "createdAt should be set")
}

// assertAPIError checks that err is an APIError with the given status and,
// when message is non-empty, that message.
func assertAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *authsdk.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
