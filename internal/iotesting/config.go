// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"
	"strconv"

	"github.com/gnames/gnmyco/pkg/config"
)

// TestDatabaseName is the database used by all integration tests, so
// they never touch a production database.
const TestDatabaseName = "gnmyco_test"

// DatabaseConfig returns connection settings for integration tests.
// Defaults can be changed with GNMYCO_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
func DatabaseConfig() config.DatabaseConfig {
	var opts []config.Option
	if v := os.Getenv("GNMYCO_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("GNMYCO_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("GNMYCO_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("GNMYCO_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg.Database
}
