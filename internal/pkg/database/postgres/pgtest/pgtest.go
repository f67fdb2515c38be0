// Package pgtest starts disposable Postgres instances for repository tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/gesstock-service/internal/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewDB starts a disposable Postgres container with the schema applied.
// The test is skipped under -short or when no container runtime is available.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}

	ctx := context.Background()
	container, err := runContainer(ctx)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := postgres.Open(dsn, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return db
}

func runContainer(ctx context.Context) (c *tcpostgres.PostgresContainer, err error) {
	// testcontainers panics when no Docker host can be found.
	defer func() {
		if r := recover(); r != nil {
			err = panicError{r}
		}
	}()
	return tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("gesstock"),
		tcpostgres.WithUsername("gesstock"),
		tcpostgres.WithPassword("gesstock"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
}

type panicError struct{ v any }

func (p panicError) Error() string { return fmt.Sprint("testcontainers: ", p.v) }
