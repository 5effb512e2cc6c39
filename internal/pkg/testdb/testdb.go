// Package testdb opens throwaway SQLite databases carrying the full schema.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/app/appcontext"
	"github.com/labtrack/lims/internal/repo"
)

// Config returns the configuration tests run with.
func Config() *appconfig.Config {
	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			ServiceAddress:            "127.0.0.1:0",
			CORSAllowOrigins:          "http://localhost:3000",
			TrustedProxies:            []string{"127.0.0.1"},
			HTTPServerShutdownTimeout: time.Second,
			AdminKey:                  "test-admin-key",
			JWTSecret:                 "test-secret",
			JWTExpiration:             5 * time.Minute,
			JWTRefreshExpiration:      24 * time.Hour,
			JWTCookieName:             "JWT",
			LogoutRedirectURL:         "/admin/",
			LocalSourceName:           "local",
		},
		AppContext: appcontext.Declare(appcontext.EnvTest),
	}
}

// Open returns a migrated and seeded in-memory database private to t.
func Open(t testing.TB) *bun.DB {
	t.Helper()

	prev := log.Logger
	log.Logger = log.Logger.Output(zerolog.NewTestWriter(t))
	t.Cleanup(func() {
		log.Logger = prev
	})

	dsn := fmt.Sprintf("file:lims-%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", xid.New())
	sqldb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and serializes writers
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, repo.NewSchema(db, Config()).Migrate(context.Background()))

	return db
}
