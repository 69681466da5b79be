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
	"os"
	"path/filepath"

	"github.com/gnames/gnmyco/internal/ioinput"
	"github.com/gnames/gnmyco/internal/iolisting"
	app "github.com/gnames/gnmyco/pkg"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

func outputFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("outputfolder")
	if s != "" {
		opts = append(opts, config.OptDownloadOutputDir(s))
	}
}

// inputFlags sets paths of the genome list and the combined listing.
// Without flags both files are expected in the output folder.
func inputFlags(cmd *cobra.Command) {
	out, _ := cmd.Flags().GetString("outputfolder")
	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		csvPath = filepath.Join(out, ioinput.GenomeListFile)
	}
	xmlPath, _ := cmd.Flags().GetString("xml")
	if xmlPath == "" {
		xmlPath = filepath.Join(out, iolisting.ListingFile)
	}
	opts = append(opts,
		config.OptDownloadGenomeListPath(csvPath),
		config.OptDownloadListingPath(xmlPath),
	)
}

func excludeFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("exclude")
	if s != "" {
		opts = append(opts, config.OptDownloadExclusionsPath(s))
	}
}

// hardcodedFlag sets the overrides file. Without the flag the file in the
// config directory is used when it exists.
func hardcodedFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("hardcoded")
	if s == "" {
		s = config.OverridesFilePath(homeDir)
	}
	opts = append(opts, config.OptDownloadOverridesPath(s))
}

func previousFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("previous")
	if s == "" {
		s = config.PreviousFilePath(homeDir)
	}
	opts = append(opts, config.OptDownloadPreviousPath(s))
}

func restrictedFlag(cmd *cobra.Command) {
	if cmd.Flags().Changed("use-restricted") {
		b, _ := cmd.Flags().GetBool("use-restricted")
		opts = append(opts, config.OptDownloadUseRestricted(b))
	}
}

func simulateFlag(cmd *cobra.Command) {
	b, _ := cmd.Flags().GetBool("simulate")
	opts = append(opts, config.OptDownloadSimulate(b))
}

func credentialsFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("credentials")
	if s == "" {
		s = config.CredentialsFilePath(homeDir)
	}
	opts = append(opts, config.OptPortalCredentialsFile(s))
}
