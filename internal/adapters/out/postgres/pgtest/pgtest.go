// Package pgtest starts a disposable PostgreSQL with the production schema for
// integration suites.
package pgtest

import (
	"context"
	"strings"
	"time"

	"takeout/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every table created by the migrations, children first.
var Tables = []string{"order_lines", "orders", "cart_lines", "address_book"}

type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs a postgres:15-alpine container, applies the migrations and opens GORM.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	d := &Database{Container: container}
	if d.DSN, err = container.ConnectionString(ctx, "sslmode=disable"); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	if err = migrations.Apply(ctx, d.DSN); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	d.DB, err = gorm.Open(postgresdriver.Open(d.DSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	return d, nil
}

// Truncate empties the tables and resets their id sequences.
func (d *Database) Truncate(tables ...string) error {
	if len(tables) == 0 {
		tables = Tables
	}
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
