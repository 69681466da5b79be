package iotaxonomy

import (
	"archive/tar"
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

type dumpKind int

const (
	nodesDump dumpKind = iota
	namesDump
	mergedDump
)

var dumpFiles = map[string]dumpKind{
	"nodes.dmp":  nodesDump,
	"names.dmp":  namesDump,
	"merged.dmp": mergedDump,
}

// dumpRow is one useful line of a taxdump file.
type dumpRow struct {
	kind  dumpKind
	id    int
	other int
	text  string
}

const gzipBlockSize = 1 << 20

// Stats counts imported records.
type Stats struct {
	Nodes  int
	Names  int
	Merged int
}

// Import reads an NCBI taxdump.tar.gz archive and replaces the taxonomy
// database at dbPath. The new database is built next to the old one and
// moved into place only after a successful import. The jobs argument sets
// the number of blocks decompressed ahead of the reader.
func Import(ctx context.Context, dumpPath, dbPath string, jobs int) (Stats, error) {
	var stats Stats
	f, err := os.Open(dumpPath)
	if err != nil {
		return stats, TaxonomyImportError(dumpPath, err)
	}
	defer f.Close()

	tmpPath := dbPath + ".tmp"
	_ = os.Remove(tmpPath)
	db, err := openDB(tmpPath)
	if err != nil {
		return stats, TaxonomyImportError(dumpPath, err)
	}

	stats, err = load(ctx, f, db, jobs)
	if err == nil {
		_, err = db.ExecContext(ctx, nameIndex)
	}
	if cerr := db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return stats, TaxonomyImportError(dumpPath, err)
	}

	if err = os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return stats, TaxonomyImportError(dumpPath, err)
	}
	if err = os.Rename(tmpPath, dbPath); err != nil {
		return stats, TaxonomyImportError(dumpPath, err)
	}

	slog.Info("Imported NCBI taxonomy",
		"nodes", humanize.Comma(int64(stats.Nodes)),
		"names", humanize.Comma(int64(stats.Names)),
		"merged", humanize.Comma(int64(stats.Merged)),
	)
	return stats, nil
}

func load(ctx context.Context, r io.Reader, db *sql.DB, jobs int) (Stats, error) {
	var stats Stats
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return stats, fmt.Errorf("create schema: %w", err)
	}

	ch := make(chan dumpRow)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		return readArchive(ctx, r, jobs, ch)
	})

	g.Go(func() error {
		var err error
		stats, err = writeRows(ctx, db, ch)
		if err != nil {
			// unblock the reader
			for range ch {
			}
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	if stats.Nodes == 0 {
		return stats, errors.New("nodes.dmp is missing or empty")
	}
	return stats, nil
}

func readArchive(ctx context.Context, r io.Reader, jobs int, ch chan<- dumpRow) error {
	if jobs < 1 {
		jobs = 1
	}
	gz, err := pgzip.NewReaderN(r, gzipBlockSize, jobs)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read tar archive: %w", err)
		}

		kind, ok := dumpFiles[filepath.Base(hdr.Name)]
		if !ok {
			continue
		}
		if err = readDump(ctx, tr, kind, ch); err != nil {
			return fmt.Errorf("%s: %w", hdr.Name, err)
		}
	}
}

func readDump(
	ctx context.Context,
	r io.Reader,
	kind dumpKind,
	ch chan<- dumpRow,
) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var line int
	for sc.Scan() {
		line++
		row, ok, err := parseLine(kind, sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- row:
		}
	}
	return sc.Err()
}

// parseLine splits a "\t|\t" separated dump line. Only scientific names
// are kept from names.dmp.
func parseLine(kind dumpKind, line string) (dumpRow, bool, error) {
	var res dumpRow
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSuffix(line, "\t|")
	if line == "" {
		return res, false, nil
	}
	fs := strings.Split(line, "\t|\t")
	if len(fs) < 2 {
		return res, false, fmt.Errorf("expected at least 2 fields, got %d", len(fs))
	}

	id, err := strconv.Atoi(strings.TrimSpace(fs[0]))
	if err != nil {
		return res, false, fmt.Errorf("bad taxon ID %q", fs[0])
	}
	res = dumpRow{kind: kind, id: id}

	switch kind {
	case namesDump:
		if len(fs) < 4 || strings.TrimSpace(fs[3]) != "scientific name" {
			return res, false, nil
		}
		res.text = strings.TrimSpace(fs[1])
	case nodesDump:
		if res.other, err = strconv.Atoi(strings.TrimSpace(fs[1])); err != nil {
			return res, false, fmt.Errorf("bad parent ID %q", fs[1])
		}
		if len(fs) > 2 {
			res.text = strings.TrimSpace(fs[2])
		}
	case mergedDump:
		if res.other, err = strconv.Atoi(strings.TrimSpace(fs[1])); err != nil {
			return res, false, fmt.Errorf("bad merged ID %q", fs[1])
		}
	}
	return res, true, nil
}

func writeRows(
	ctx context.Context,
	db *sql.DB,
	ch <-chan dumpRow,
) (Stats, error) {
	var stats Stats
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, err
	}
	defer func() { _ = tx.Rollback() }()

	queries := map[dumpKind]string{
		nodesDump:  "INSERT OR REPLACE INTO nodes (tax_id, parent_id, rank) VALUES (?, ?, ?)",
		namesDump:  "INSERT OR REPLACE INTO names (tax_id, name) VALUES (?, ?)",
		mergedDump: "INSERT OR REPLACE INTO merged (old_id, new_id) VALUES (?, ?)",
	}
	stmts := make(map[dumpKind]*sql.Stmt, len(queries))
	for k, q := range queries {
		if stmts[k], err = tx.PrepareContext(ctx, q); err != nil {
			return stats, err
		}
		defer stmts[k].Close()
	}

	var count int
	for row := range ch {
		switch row.kind {
		case nodesDump:
			_, err = stmts[nodesDump].ExecContext(ctx, row.id, row.other, row.text)
			stats.Nodes++
		case namesDump:
			_, err = stmts[namesDump].ExecContext(ctx, row.id, row.text)
			stats.Names++
		case mergedDump:
			_, err = stmts[mergedDump].ExecContext(ctx, row.id, row.other)
			stats.Merged++
		}
		if err != nil {
			return stats, err
		}

		count++
		if count%100_000 == 0 {
			progressReport(count, "taxonomy records")
		}
	}
	if count >= 100_000 {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))
	}

	if err = tx.Commit(); err != nil {
		return stats, err
	}
	return stats, nil
}

func progressReport(recNum int, entity string) {
	str := fmt.Sprintf("Processed %s %s", humanize.Comma(int64(recNum)), entity)
	fmt.Fprintf(os.Stderr, "\r%s", strings.Repeat(" ", 80))
	fmt.Fprintf(os.Stderr, "\r%s", str)
}
