package keystore

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	container "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestSqlite(t testing.TB) *gorm.DB {
	t.Helper()

	uniqueDSN := fmt.Sprintf("file::memory:test%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(uniqueDSN), gormConfig(DatabaseConfig{}))
	require.NoError(t, err)
	require.NoError(t, migrateSqlite(db))

	return db
}

// setupTestPostgres starts a postgres container and connects through
// ConnectToDB so the embedded goose migrations are exercised.
func setupTestPostgres(ctx context.Context, t testing.TB) (*gorm.DB, testcontainers.Container) {
	t.Helper()

	postgresContainer, err := container.Run(ctx,
		"postgres:16-alpine",
		container.WithDatabase("wallet"),
		container.WithUsername("postgres"),
		container.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			)))
	require.NoError(t, err)

	url, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cnf, err := ParseConnectionString(url)
	require.NoError(t, err)
	db, err := ConnectToDB(cnf, nil)
	require.NoError(t, err)

	return db, postgresContainer
}

// setupTestDB chooses sqlite or postgres based on TEST_DB_DRIVER.
func setupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	if os.Getenv("TEST_DB_DRIVER") != "postgres" {
		return setupTestSqlite(t)
	}

	ctx := context.Background()
	db, c := setupTestPostgres(ctx, t)
	t.Cleanup(func() {
		if err := c.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})
	return db
}
