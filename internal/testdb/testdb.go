// Package testdb connects integration tests to real database engines. Tests
// are skipped unless the engine's URL is set in the environment.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/mongodb"
	"github.com/phrazzld/devlink-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// Environment variables naming the test engines.
const (
	PostgresURLEnv = "DEVLINK_TEST_DATABASE_URL"
	MongoURLEnv    = "DEVLINK_TEST_MONGO_URL"
)

// TestTimeout bounds setup and cleanup against the test engines.
const TestTimeout = 10 * time.Second

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Postgres returns a migrated, empty database. Tables are truncated again
// when the test ends.
func Postgres(t *testing.T) *sql.DB {
	t.Helper()
	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping postgres integration test", PostgresURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, quietLogger())
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, postgres.Migrate(ctx, db, quietLogger()), "failed to migrate test database")

	truncate := func() error {
		_, err := db.ExecContext(context.Background(), "TRUNCATE posts, profiles, users")
		return err
	}
	require.NoError(t, truncate())

	t.Cleanup(func() {
		if err := truncate(); err != nil {
			t.Logf("failed to truncate test tables: %v", err)
		}
		_ = db.Close()
	})
	return db
}

// Mongo returns a fresh database with its indexes in place. The database is
// dropped when the test ends.
func Mongo(t *testing.T) *mongo.Database {
	t.Helper()
	url := os.Getenv(MongoURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping mongo integration test", MongoURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	name := fmt.Sprintf("devlink_test_%s", domain.NewID().Hex())
	client, db, err := mongodb.Connect(ctx, url, name, quietLogger())
	require.NoError(t, err, "failed to connect to test mongo")
	require.NoError(t, mongodb.EnsureIndexes(ctx, db), "failed to create test indexes")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test database %s: %v", name, err)
		}
		_ = client.Disconnect(ctx)
	})
	return db
}
