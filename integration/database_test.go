//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPrgaugeWithMySQL tests the prgauge CLI with a MySQL backend.
func TestPrgaugeWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "prgauge",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/prgauge?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("PRGAUGE_CACHE_BACKEND", "mysql")
	_ = os.Setenv("PRGAUGE_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("PRGAUGE_HISTORY_BACKEND", "mysql")
	_ = os.Setenv("PRGAUGE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("PRGAUGE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_HISTORY_DB_CONNECT") }()

	runBackendScenario(t)
}

// TestPrgaugeWithPostgres tests the prgauge CLI with a PostgreSQL backend.
func TestPrgaugeWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("PRGAUGE_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("PRGAUGE_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("PRGAUGE_HISTORY_BACKEND", "postgresql")
	_ = os.Setenv("PRGAUGE_HISTORY_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("PRGAUGE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_HISTORY_BACKEND") }()
	defer func() { _ = os.Unsetenv("PRGAUGE_HISTORY_DB_CONNECT") }()

	runBackendScenario(t)
}

// runBackendScenario exercises the full command surface against the
// backend configured via environment variables.
func runBackendScenario(t *testing.T) {
	// Run prgauge cache clear
	err := runPrgaugeCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run prgauge history clear
	err = runPrgaugeCommand(t, "history", "clear")
	require.NoError(t, err)

	// Score the latest commit of this repo with a small baseline window
	err = runPrgaugeCommand(t, "analyze", "--change", "HEAD", "--history", "5")
	require.NoError(t, err)

	// Run prgauge cache status
	err = runPrgaugeCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run prgauge history status
	err = runPrgaugeCommand(t, "history", "status")
	require.NoError(t, err)
}
