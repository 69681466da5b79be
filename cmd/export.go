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

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmyco/internal/iodb"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/spf13/cobra"
)

func getExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exports the reconciled catalog to PostgreSQL",
		Long: `Builds the project catalog the same way as 'download' does and
stores projects, their selected files and lineages in PostgreSQL.
Tables are created or updated automatically, previously exported
projects are replaced. Every export is recorded in the 'runs' table.

Database connection is configured in the 'database' section of
config.yaml or by GNMYCO_DATABASE_* environment variables.

Examples:
  gnmyco export
  GNMYCO_DATABASE_HOST=db.example.org gnmyco export -o /data/mycocosm`,
		PreRun: func(cmd *cobra.Command, args []string) {
			flags := []funcFlag{outputFlag, inputFlags, hardcodedFlag}
			for _, v := range flags {
				v(cmd)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runExport(); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("csv", "c", "", "path to the genome list")
	cmd.Flags().StringP("xml", "x", "", "path to the combined XML listing")
	cmd.Flags().String("hardcoded", "", "file with hardcoded gene models filenames")
	cmd.Flags().StringP("outputfolder", "o", "output", "output folder")
	return cmd
}

func runExport() error {
	ctx := context.Background()
	start := time.Now()
	cfg.Update(opts)

	rec, err := reconcile(cfg)
	if err != nil {
		return err
	}

	ex, err := iodb.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer ex.Close()

	if err = ex.Migrate(); err != nil {
		return err
	}

	var exp mycocosm.Exporter = ex
	if err = exp.Export(ctx, rec.catalog); err != nil {
		return err
	}

	gn.Info(
		"Exported <em>%d</em> projects to <em>%s</em> in %s",
		rec.catalog.Len(), cfg.Database.Database,
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
