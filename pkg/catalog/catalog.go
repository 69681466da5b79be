// Package catalog builds the project catalog from the MycoCosm genome list.
//
// Build reads the tabular list, resolves lineages, applies display name
// overrides, computes organism names and placement paths, and removes
// excluded projects. It writes every Project field except the file
// selections.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/gnmyco/pkg/lineage"
	"github.com/gnames/gnmyco/pkg/placement"
	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gnames/gnmyco/pkg/rules"
)

// Column names of the MycoCosm genome list.
const (
	ColTaxID      = "NCBI Taxon"
	ColCode       = "portal"
	ColName       = "name"
	ColRestricted = "is restricted"
)

// LineageResolver finds lineages for projects.
type LineageResolver interface {
	Resolve(code, taxID, organism string) (lineage.Result, error)
}

// Report summarizes a catalog build.
type Report struct {
	// Rows is the number of data rows read.
	Rows int
	// Skipped lists row problems that caused a row to be ignored.
	Skipped []RowError
	// LineageFailures lists projects without a resolved lineage.
	LineageFailures []*lineage.ResolutionFailedError
	// ByName lists projects whose lineage was found by organism name.
	ByName []string
	// Removed lists excluded projects that were present in the list.
	Removed []string
}

// RowError describes a malformed row.
type RowError struct {
	Line int
	Msg  string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Builder creates catalogs.
type Builder struct {
	resolver LineageResolver
	rules    *rules.Rules
}

// NewBuilder creates a catalog Builder.
func NewBuilder(res LineageResolver, r *rules.Rules) *Builder {
	return &Builder{resolver: res, rules: r}
}

// Build parses the genome list from r. The reader must deliver valid
// UTF-8; use a replacing decoder for raw downloads. A malformed row is
// skipped with a warning. Errors are returned only for unreadable input
// or lineage backend failures other than unknown taxon IDs.
func (b *Builder) Build(r io.Reader) (*project.Catalog, *Report, error) {
	rep := &Report{}
	cat := project.NewCatalog()

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	header, err := rd.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read genome list header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				b.skip(rep, perr.StartLine, perr.Err.Error())
				continue
			}
			return nil, nil, fmt.Errorf("cannot read genome list: %w", err)
		}
		line, _ := rd.FieldPos(0)
		rep.Rows++

		p, msg := b.newProject(row, idx)
		if msg != "" {
			b.skip(rep, line, msg)
			continue
		}

		if err = b.addLineage(p, rep); err != nil {
			return nil, nil, err
		}
		cat.Add(p)
	}

	for _, code := range b.rules.ExcludedProjects {
		if cat.Remove(code) {
			rep.Removed = append(rep.Removed, code)
		}
	}

	return cat, rep, nil
}

// ReadCodes returns portal codes of the genome list in file order.
// Rows without a code are ignored.
func ReadCodes(r io.Reader) ([]string, error) {
	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	header, err := rd.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read genome list header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var res []string
	seen := make(map[string]struct{})
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("cannot read genome list: %w", err)
		}
		code := field(row, idx.code)
		if _, ok := seen[code]; ok || code == "" {
			continue
		}
		seen[code] = struct{}{}
		res = append(res, code)
	}
	return res, nil
}

func (b *Builder) skip(rep *Report, line int, msg string) {
	re := RowError{Line: line, Msg: msg}
	rep.Skipped = append(rep.Skipped, re)
	slog.Warn("Skipping genome list row", "line", line, "reason", msg)
}

type columns struct {
	taxID, code, name, restricted int
}

func headerIndex(header []string) (columns, error) {
	res := columns{-1, -1, -1, -1}
	for i, v := range header {
		switch strings.TrimSpace(strings.TrimPrefix(v, "\ufeff")) {
		case ColTaxID:
			res.taxID = i
		case ColCode:
			res.code = i
		case ColName:
			res.name = i
		case ColRestricted:
			res.restricted = i
		}
	}
	var missing []string
	if res.taxID < 0 {
		missing = append(missing, ColTaxID)
	}
	if res.code < 0 {
		missing = append(missing, ColCode)
	}
	if res.name < 0 {
		missing = append(missing, ColName)
	}
	if len(missing) > 0 {
		return res, fmt.Errorf("genome list misses columns: %s",
			strings.Join(missing, ", "))
	}
	return res, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (b *Builder) newProject(row []string, idx columns) (*project.Project, string) {
	code := field(row, idx.code)
	taxID := field(row, idx.taxID)
	name := field(row, idx.name)
	switch {
	case code == "":
		return nil, "empty portal code"
	case taxID == "":
		return nil, fmt.Sprintf("empty taxon ID for %s", code)
	case name == "":
		return nil, fmt.Sprintf("empty name for %s", code)
	}

	res := &project.Project{
		Code:         code,
		TaxID:        taxID,
		DisplayName:  name,
		OrganismName: project.OrganismName(name),
		IsRestricted: field(row, idx.restricted) == "Y",
	}
	if v, ok := b.rules.DisplayName(code); ok {
		res.DisplayName = v
	}
	return res, ""
}

func (b *Builder) addLineage(p *project.Project, rep *Report) error {
	lin, err := b.resolver.Resolve(p.Code, p.TaxID, p.OrganismName)
	if lin.TaxID != "" {
		p.TaxID = lin.TaxID
	}
	if err != nil {
		var rfe *lineage.ResolutionFailedError
		if !errors.As(err, &rfe) {
			return err
		}
		rep.LineageFailures = append(rep.LineageFailures, rfe)
		slog.Warn("Cannot find lineage",
			"taxon_id", rfe.TaxID, "project", p.Code)
	}
	if lin.ByName {
		rep.ByName = append(rep.ByName, p.Code)
	}
	p.SetLineage(lin.Names)
	p.PlacementPath = placement.Path(p.LineageSet, b.rules.Branches())
	return nil
}
