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
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmyco/internal/ioportal"
	"github.com/gnames/gnmyco/internal/iotaxonomy"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/spf13/cobra"
)

func getTaxonomyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Imports NCBI taxonomy used for lineages of projects",
		Long: `Downloads NCBI taxdump.tar.gz and imports taxon nodes, scientific
names and merged taxon IDs into a local SQLite database in the cache
directory. The database is used by 'download' and 'export' to build
lineages and taxonomic paths of projects.

Examples:
  gnmyco taxonomy
  gnmyco taxonomy --dump ~/Downloads/taxdump.tar.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runTaxonomy(cmd); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP(
		"dump", "d", "",
		"use a local taxdump.tar.gz instead of downloading it",
	)
	return cmd
}

func runTaxonomy(cmd *cobra.Command) error {
	ctx := context.Background()
	start := time.Now()
	cfg.Update(opts)

	dump, _ := cmd.Flags().GetString("dump")
	if dump == "" {
		dump = config.TaxdumpPath(cfg.HomeDir)
		cl, err := ioportal.New(cfg.Portal, nil)
		if err != nil {
			return err
		}
		gn.Info("Downloading <em>%s</em>", cfg.Portal.TaxdumpURL)
		if err = cl.Download(ctx, cfg.Portal.TaxdumpURL, dump); err != nil {
			return err
		}
	}

	dbPath := config.TaxonomyDBPath(cfg.HomeDir)
	stats, err := iotaxonomy.Import(ctx, dump, dbPath, cfg.JobsNumber)
	if err != nil {
		return err
	}

	gn.Info(
		"Imported <em>%s</em> taxa and <em>%s</em> merged IDs in %s",
		humanize.Comma(int64(stats.Nodes)),
		humanize.Comma(int64(stats.Merged)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
