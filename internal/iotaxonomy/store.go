// Package iotaxonomy keeps a local copy of the NCBI taxonomy in SQLite and
// resolves taxon IDs and canonical names to lineages.
package iotaxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnmyco/pkg/lineage"
	_ "modernc.org/sqlite"
)

// maxDepth protects lineage walks from cycles in a damaged dump.
const maxDepth = 256

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	tax_id INTEGER PRIMARY KEY,
	parent_id INTEGER NOT NULL,
	rank TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS names (
	tax_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS merged (
	old_id INTEGER PRIMARY KEY,
	new_id INTEGER NOT NULL
);
`

const nameIndex = `CREATE INDEX IF NOT EXISTS names_name_idx ON names (name)`

// Store is a read-only view of an imported taxonomy. It implements
// lineage.Backend and lineage.NameBackend.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to an existing taxonomy database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, TaxonomyNotFoundError(path)
	} else if err != nil {
		return nil, TaxonomyDBError(path, err)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, TaxonomyDBError(path, err)
	}

	var n int
	err = db.QueryRow("SELECT count(*) FROM nodes").Scan(&n)
	if err != nil {
		_ = db.Close()
		return nil, TaxonomyDBError(path, err)
	}
	if n == 0 {
		_ = db.Close()
		return nil, TaxonomyNotFoundError(path)
	}

	return &Store{db: db, path: path}, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = OFF",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lineage returns scientific names from the root of the taxonomy down to
// the taxon itself. Merged taxon IDs are followed to their current ID.
func (s *Store) Lineage(taxID string) ([]string, error) {
	id, err := strconv.Atoi(strings.TrimSpace(taxID))
	if err != nil {
		return nil, fmt.Errorf("taxon %q: %w", taxID, lineage.ErrUnknownTaxID)
	}
	return s.lineage(context.Background(), id)
}

// LineageByName finds a taxon by its scientific name and returns its
// lineage. If several taxa share the name, the smallest taxon ID wins.
func (s *Store) LineageByName(canonical string) ([]string, error) {
	ctx := context.Background()
	var id int
	err := s.db.QueryRowContext(ctx,
		"SELECT tax_id FROM names WHERE name = ? ORDER BY tax_id LIMIT 1",
		canonical,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("name %q: %w", canonical, lineage.ErrUnknownTaxID)
	}
	if err != nil {
		return nil, err
	}
	return s.lineage(ctx, id)
}

func (s *Store) lineage(ctx context.Context, id int) ([]string, error) {
	id, err := s.current(ctx, id)
	if err != nil {
		return nil, err
	}

	var res []string
	seen := make(map[int]struct{})
	for {
		if _, ok := seen[id]; ok || len(seen) > maxDepth {
			return nil, fmt.Errorf("circular lineage at taxon %d", id)
		}
		seen[id] = struct{}{}

		var parent int
		var name sql.NullString
		err = s.db.QueryRowContext(ctx, `
SELECT n.parent_id, nm.name
  FROM nodes n
  LEFT JOIN names nm ON nm.tax_id = n.tax_id
  WHERE n.tax_id = ?`, id).Scan(&parent, &name)
		if errors.Is(err, sql.ErrNoRows) {
			if len(res) == 0 {
				return nil, fmt.Errorf("taxon %d: %w", id, lineage.ErrUnknownTaxID)
			}
			return nil, fmt.Errorf("parent taxon %d is missing", id)
		}
		if err != nil {
			return nil, err
		}

		if name.Valid {
			res = append(res, name.String)
		}
		if parent == id {
			break
		}
		id = parent
	}

	slices.Reverse(res)
	return res, nil
}

// current follows merged.dmp records to the taxon ID in use.
func (s *Store) current(ctx context.Context, id int) (int, error) {
	var newID int
	err := s.db.QueryRowContext(ctx,
		"SELECT new_id FROM merged WHERE old_id = ?", id,
	).Scan(&newID)
	if errors.Is(err, sql.ErrNoRows) {
		return id, nil
	}
	if err != nil {
		return 0, err
	}
	return newID, nil
}
