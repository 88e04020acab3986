package postgres_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/authsvc/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerDSN  string
	containerErr  error
)

func TestMain(m *testing.M) {
	code := m.Run()
	if container != nil {
		_ = container.Terminate(context.Background())
	}
	os.Exit(code)
}

// startPostgres starts one postgres container for the whole package.
func startPostgres(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres driver tests in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	containerOnce.Do(func() {
		ctx := context.Background()
		req := testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "auth",
				"POSTGRES_PASSWORD": "auth",
				"POSTGRES_DB":       "auth",
			},
			// postgres logs this once for the init server and once for the real one
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		}

		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if containerErr != nil {
			return
		}

		host, err := container.Host(ctx)
		if err != nil {
			containerErr = err
			return
		}
		port, err := container.MappedPort(ctx, "5432/tcp")
		if err != nil {
			containerErr = err
			return
		}
		containerDSN = fmt.Sprintf("postgres://auth:auth@%s:%s/auth?sslmode=disable", host, port.Port())
	})
	require.NoError(t, containerErr)
	return containerDSN
}

func newStore(t *testing.T) *postgres.Store {
	t.Helper()

	st, err := postgres.NewStore(context.Background(), startPostgres(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// unique suffixes values so tests can share one database.
func unique(s string) string {
	return s + "-" + strings.ToLower(idx.New().String())
}

func newUser(username, email string) domain.User {
	return domain.User{Username: username, Email: email, PasswordHash: "$2a$10$hash-for-" + username}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestCreateAndFindUser(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	username, email := unique("alice"), unique("a")+"@x.com"
	created, err := st.Users().CreateUser(ctx, newUser(username, email))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byID, err := st.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, username, byID.Username)
	require.Equal(t, email, byID.Email)
	require.WithinDuration(t, created.CreatedAt, byID.CreatedAt, time.Millisecond)

	for _, login := range []string{username, email} {
		got, err := st.Users().FindUser(ctx, store.ByLogin(login))
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
	}

	_, err = st.Users().FindUser(ctx, store.ByEmail(username))
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().FindUser(ctx, store.UserFilter{})
	require.ErrorIs(t, err, store.ErrEmptyFilter)
}

func TestCreateUserConflicts(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	username, email := unique("alice"), unique("a")+"@x.com"
	_, err := st.Users().CreateUser(ctx, newUser(username, email))
	require.NoError(t, err)

	_, err = st.Users().CreateUser(ctx, newUser(unique("bob"), email))
	require.True(t, store.IsConflict(err, "email"), "got %v", err)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().CreateUser(ctx, newUser(username, unique("b")+"@x.com"))
	require.True(t, store.IsConflict(err, "username"), "got %v", err)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u, err := st.Users().CreateUser(ctx, newUser(unique("alice"), unique("a")+"@x.com"))
	require.NoError(t, err)

	require.NoError(t, st.Users().DeleteUser(ctx, u.ID))
	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, st.Users().DeleteUser(ctx, u.ID), store.ErrNotFound)
}

func TestConcurrentCreateSameEmail(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	const n = 8
	email := unique("same") + "@x.com"
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = st.Users().CreateUser(ctx, newUser(unique(fmt.Sprintf("user%d", i)), email))
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case store.IsConflict(err, "email"):
			conflicts++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflicts)
}
