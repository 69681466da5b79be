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
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/internal/iofs"
	"github.com/gnames/gnmyco/internal/ioinput"
	"github.com/gnames/gnmyco/internal/iolisting"
	"github.com/gnames/gnmyco/internal/ioportal"
	"github.com/gnames/gnmyco/pkg/catalog"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/spf13/cobra"
)

func getFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetches metadata files needed for downloads",
		Long: `Fetches inputs of the download command.

--genome-list saves the MycoCosm genome list (CSV).
--listing adds XML file listings of all projects of the genome list to
  the combined listing. Projects that are already in the combined
  listing are not requested again, so an interrupted run can be
  continued.
--previous DIR indexes "*.gz" files found in DIR, so later downloads
  can copy them instead of downloading.

Examples:
  gnmyco fetch --genome-list --listing
  gnmyco fetch --previous /data/mycocosm_2023`,
		PreRun: func(cmd *cobra.Command, args []string) {
			flags := []funcFlag{outputFlag, inputFlags, credentialsFlag}
			for _, v := range flags {
				v(cmd)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runFetch(cmd); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolP("genome-list", "g", false, "download MycoCosm genome list")
	cmd.Flags().BoolP("listing", "l", false, "download XML file listings of projects")
	cmd.Flags().StringP("previous", "p", "", "index *.gz files of a previous download directory")
	cmd.Flags().StringP("csv", "c", "", "path to the genome list")
	cmd.Flags().StringP("xml", "x", "", "path to the combined XML listing")
	cmd.Flags().StringP("credentials", "j", "", "file with JGI user and password")
	cmd.Flags().StringP("outputfolder", "o", "output", "output folder")
	return cmd
}

func runFetch(cmd *cobra.Command) error {
	ctx := context.Background()
	cfg.Update(opts)

	genomeList, _ := cmd.Flags().GetBool("genome-list")
	listings, _ := cmd.Flags().GetBool("listing")
	prevDir, _ := cmd.Flags().GetString("previous")
	if !genomeList && !listings && prevDir == "" {
		return cmd.Help()
	}

	if prevDir != "" {
		if err := indexPrevious(prevDir, config.PreviousFilePath(cfg.HomeDir)); err != nil {
			return err
		}
	}

	if !genomeList && !listings {
		return nil
	}

	cl, err := portalClient(cfg)
	if err != nil {
		return err
	}

	if genomeList {
		path := cfg.Download.GenomeListPath
		if err = cl.FetchGenomeList(ctx, path); err != nil {
			return err
		}
		gn.Info("Genome list is saved to <em>%s</em>", path)
	}

	if listings {
		if err = cl.Login(ctx); err != nil {
			return err
		}
		return fetchListings(ctx, cl, cfg.Download)
	}
	return nil
}

// portalClient creates a portal client. Credentials are requested only
// when the client logs in.
func portalClient(cfg *config.Config) (*ioportal.Client, error) {
	path := cfg.Portal.CredentialsFile
	creds := func() (ioportal.Credentials, error) {
		return ioportal.LoadCredentials(path, ioportal.NewTerminalPrompter(path))
	}
	return ioportal.New(cfg.Portal, creds)
}

// fetchListings appends listings of projects missing from the combined
// listing. The combined file is saved after each project.
func fetchListings(
	ctx context.Context,
	p mycocosm.Portal,
	dl config.DownloadConfig,
) error {
	f, err := ioinput.OpenGenomeList(dl.GenomeListPath)
	if err != nil {
		return err
	}
	codes, err := catalog.ReadCodes(f)
	f.Close()
	if err != nil {
		return ioinput.GenomeListError(dl.GenomeListPath, err)
	}

	comb, err := iolisting.LoadCombined(dl.ListingPath)
	if err != nil {
		return err
	}

	var missing []string
	for _, v := range codes {
		if !comb.Has(v) {
			missing = append(missing, v)
		}
	}
	gn.Info(
		"Combined listing has %d projects, %d more to fetch",
		comb.Len(), len(missing),
	)
	if len(missing) == 0 {
		return nil
	}

	if err = os.MkdirAll(filepath.Dir(dl.ListingPath), 0755); err != nil {
		return iofs.CreateDirError(filepath.Dir(dl.ListingPath), err)
	}

	bar := pb.Full.Start(len(missing))
	bar.Set("prefix", "Listings: ")
	defer bar.Finish()

	var failed int
	for _, code := range missing {
		bar.Increment()
		data, err := p.FetchListing(ctx, code)
		if errors.Is(err, context.Canceled) {
			return err
		}
		if err == nil {
			_, err = comb.Append(data)
		}
		if err != nil {
			failed++
			slog.Warn("Cannot get project listing", "code", code, "error", err)
			continue
		}
		if err = comb.Write(dl.ListingPath); err != nil {
			return err
		}
	}

	if failed > 0 {
		gn.Warn("Listings of <em>%d</em> projects were not fetched, see the log", failed)
	}
	gn.Info("Combined listing is saved to <em>%s</em>", dl.ListingPath)
	return nil
}

func indexPrevious(dir, indexPath string) error {
	f, err := os.Create(indexPath)
	if err != nil {
		return iofs.WriteFileError(indexPath, err)
	}
	defer f.Close()

	count, err := ioinput.ScanPrevious(dir, f)
	if err != nil {
		return err
	}
	gn.Info("Indexed <em>%d</em> files from <em>%s</em>", count, dir)
	return nil
}
