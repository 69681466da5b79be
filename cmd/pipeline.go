/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmyco/internal/iofs"
	"github.com/gnames/gnmyco/internal/ioinput"
	"github.com/gnames/gnmyco/internal/iolisting"
	"github.com/gnames/gnmyco/internal/ioreport"
	"github.com/gnames/gnmyco/internal/iotaxonomy"
	"github.com/gnames/gnmyco/pkg/catalog"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/lineage"
	"github.com/gnames/gnmyco/pkg/listing"
	"github.com/gnames/gnmyco/pkg/project"
)

// reconciled is a catalog with file selections and the diagnostics of
// the listing resolution.
type reconciled struct {
	catalog *project.Catalog
	diag    *listing.Diagnostics
}

// reconcile builds the catalog from the genome list, resolves lineages
// and selects assembly and gene models files from the combined listing.
// The gene models report is written to the output folder.
func reconcile(cfg *config.Config) (*reconciled, error) {
	start := time.Now()
	dl := cfg.Download

	rls, err := iofs.LoadRules(cfg.HomeDir)
	if err != nil {
		return nil, err
	}

	overrides, err := ioinput.Overrides(dl.OverridesPath)
	if err != nil {
		return nil, err
	}

	store, err := iotaxonomy.Open(config.TaxonomyDBPath(cfg.HomeDir))
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var lopts []lineage.Option
	if cfg.Lineage.NameFallback {
		lopts = append(lopts, lineage.OptNameFallback(iotaxonomy.NewCanonicalizer()))
	}
	res := lineage.New(store, rls.TaxIDRemap, lopts...)

	f, err := ioinput.OpenGenomeList(dl.GenomeListPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cat, rep, err := catalog.NewBuilder(res, rls).Build(f)
	if err != nil {
		return nil, ioinput.GenomeListError(dl.GenomeListPath, err)
	}
	reportCatalog(rep)

	tree, err := iolisting.Load(dl.ListingPath)
	if err != nil {
		return nil, err
	}

	diag := listing.NewResolver(rls, overrides).Annotate(cat, tree)
	if err = os.MkdirAll(dl.OutputDir, 0755); err != nil {
		return nil, iofs.CreateDirError(dl.OutputDir, err)
	}
	path, err := ioreport.WriteGeneModels(dl.OutputDir, cat, diag)
	if err != nil {
		return nil, err
	}
	slog.Info("Gene models report is written", "path", path)

	if s := ioreport.MissingAnnotations(diag.MissingAnnotation()); s != "" {
		fmt.Println(s)
	}
	if s := ioreport.Warnings(diag); s != "" {
		fmt.Println(s)
	}

	gn.Info(
		"Reconciled <em>%s</em> projects in %s",
		humanize.Comma(int64(cat.Len())),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return &reconciled{catalog: cat, diag: diag}, nil
}

func reportCatalog(rep *catalog.Report) {
	for _, v := range rep.Skipped {
		slog.Warn("Skipped genome list row", "line", v.Line, "reason", v.Msg)
	}
	for _, v := range rep.LineageFailures {
		slog.Warn("Lineage not found", "error", v)
	}
	if len(rep.Skipped) > 0 {
		gn.Warn("Skipped <em>%d</em> malformed genome list rows", len(rep.Skipped))
	}
	if len(rep.LineageFailures) > 0 {
		gn.Warn(
			"Lineage is unknown for <em>%d</em> projects, see the log",
			len(rep.LineageFailures),
		)
	}
	if len(rep.ByName) > 0 {
		gn.Info("<em>%d</em> lineages were found by organism name", len(rep.ByName))
	}
	slog.Info("Genome list is read",
		"rows", rep.Rows,
		"removed", len(rep.Removed),
	)
}

// previous reads the prior-locations index. The index is optional.
func previous(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("No index of previously downloaded files", "path", path)
		return nil, nil
	}
	return ioinput.Previous(path)
}

// exclusions reads the exclusion list if its path is set.
func exclusions(path string) (map[string]struct{}, error) {
	if path == "" {
		return nil, nil
	}
	return ioinput.Exclusions(path)
}
