// Package iodb exports the reconciled catalog to PostgreSQL.
// This is an impure I/O package that implements mycocosm.Exporter.
package iodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	app "github.com/gnames/gnmyco/pkg"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gnames/gnmyco/pkg/schema"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exporter stores catalogs using a pgx connection pool.
type Exporter struct {
	pool      *pgxpool.Pool
	batchSize int
}

var _ mycocosm.Exporter = (*Exporter)(nil)

// Connect establishes a connection pool to PostgreSQL.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Exporter, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 5_000
	}
	return &Exporter{pool: pool, batchSize: batch}, nil
}

// Close releases all database connections.
func (e *Exporter) Close() error {
	if e.pool != nil {
		e.pool.Close()
	}
	return nil
}

// Migrate creates or updates tables with GORM AutoMigrate.
func (e *Exporter) Migrate() error {
	db := stdlib.OpenDBFromPool(e.pool)
	defer db.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return SchemaError(err)
	}

	if err = schema.Migrate(gormDB); err != nil {
		return SchemaError(err)
	}
	return nil
}

// Export replaces exported projects with the catalog in one transaction.
// A new run record is added for every export.
func (e *Exporter) Export(ctx context.Context, cat *project.Catalog) error {
	if err := e.Migrate(); err != nil {
		return err
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return ExportError("projects", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, table := range []string{"lineage_taxa", "projects"} {
		if _, err = tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return ExportError(table, err)
		}
	}

	run := schema.Run{
		ID:          uuid.NewString(),
		ExportedAt:  time.Now().UTC(),
		ProjectsNum: cat.Len(),
		Version:     app.Version,
	}
	_, err = tx.Exec(ctx,
		"INSERT INTO runs (id, exported_at, projects_num, version) VALUES ($1, $2, $3, $4)",
		run.ID, run.ExportedAt, run.ProjectsNum, run.Version,
	)
	if err != nil {
		return ExportError("runs", err)
	}

	var prows, lrows [][]any
	var cols []string
	for _, p := range cat.Projects() {
		row := schema.NewProject(p, run.ID)
		cols = row.Columns()
		prows = append(prows, row.Values())
		for _, v := range schema.NewLineage(p) {
			lrows = append(lrows, []any{v.ProjectID, v.Position, v.Name})
		}
	}

	if err = e.copyRows(ctx, tx, "projects", cols, prows); err != nil {
		return err
	}
	lcols := []string{"project_id", "position", "name"}
	if err = e.copyRows(ctx, tx, "lineage_taxa", lcols, lrows); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return ExportError("projects", err)
	}

	slog.Info("Exported catalog",
		"run", run.ID,
		"projects", humanize.Comma(int64(len(prows))),
		"lineage_taxa", humanize.Comma(int64(len(lrows))),
	)
	return nil
}

// copyRows performs bulk inserts using pgx CopyFrom in batches.
func (e *Exporter) copyRows(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	columns []string,
	rows [][]any,
) error {
	for start := 0; start < len(rows); start += e.batchSize {
		end := min(start+e.batchSize, len(rows))
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(rows[start:end]),
		)
		if err != nil {
			return ExportError(table, err)
		}
	}
	return nil
}
