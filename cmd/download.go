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
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmyco/internal/iodownload"
	"github.com/gnames/gnmyco/internal/ioreport"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func getDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download",
		Short: "Downloads assemblies and gene models of MycoCosm projects",
		Long: `Builds the project catalog from the genome list and the combined
XML listing, selects the best assembly and gene models files and
downloads them into a taxonomic directory tree.

Files that are already present are kept, files from a previous download
are copied (see 'gnmyco fetch --previous'). A checkpoint file and
JGI_taxonomy.tsv are written into the output folder. The gene models
report List_gene_gff_filenames.txt shows all candidate gene models files
and the selected one.

Examples:
  gnmyco download -s
  gnmyco download -o /data/mycocosm -e exclude.txt
  gnmyco download --hardcoded gff_overrides.tsv -r`,
		PreRun: func(cmd *cobra.Command, args []string) {
			flags := []funcFlag{
				outputFlag, inputFlags, excludeFlag, hardcodedFlag,
				previousFlag, restrictedFlag, simulateFlag, credentialsFlag,
			}
			for _, v := range flags {
				v(cmd)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runDownload(); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringP("csv", "c", "", "path to the genome list")
	cmd.Flags().StringP("xml", "x", "", "path to the combined XML listing")
	cmd.Flags().StringP("previous", "p", "", "index of previously downloaded files")
	cmd.Flags().StringP("exclude", "e", "", "file with project codes to skip")
	cmd.Flags().String("hardcoded", "", "file with hardcoded gene models filenames")
	cmd.Flags().BoolP("use-restricted", "r", false, "include projects with restricted data")
	cmd.Flags().StringP("credentials", "j", "", "file with JGI user and password")
	cmd.Flags().StringP("outputfolder", "o", "output", "output folder")
	cmd.Flags().BoolP("simulate", "s", false, "make decisions without copying or downloading")
	return cmd
}

func runDownload() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	cfg.Update(opts)
	dl := cfg.Download

	rec, err := reconcile(cfg)
	if err != nil {
		return err
	}

	excluded, err := exclusions(dl.ExclusionsPath)
	if err != nil {
		return err
	}
	prev, err := previous(dl.PreviousPath)
	if err != nil {
		return err
	}

	var tr mycocosm.Transfer
	if !dl.Simulate {
		cl, err := portalClient(cfg)
		if err != nil {
			return err
		}
		if err = cl.Login(ctx); err != nil {
			return err
		}
		tr = cl
	}

	d := iodownload.New(dl, tr,
		iodownload.OptExcluded(excluded),
		iodownload.OptPrevious(prev),
		iodownload.OptProgress(isatty.IsTerminal(os.Stderr.Fd())),
	)
	cnt, err := d.Run(ctx, rec.catalog)
	if err != nil {
		return err
	}

	fmt.Printf("Portals: %d\n", cnt.Projects)
	fmt.Printf("Files needed: %d\n", cnt.Needed)
	fmt.Println(cnt.Summary())
	fmt.Println(ioreport.Summary(cnt))
	if cnt.Failed > 0 {
		gn.Warn("<em>%d</em> files were not downloaded, see the log", cnt.Failed)
	}
	if dl.Simulate {
		gn.Info("Simulation is finished, no files were copied or downloaded")
	}
	gn.Info("Finished in %s", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
