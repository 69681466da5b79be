// Package iodownload executes a download run over a resolved catalog.
//
// For every project that passes the run policy it creates the project
// directory and obtains the selected assembly and gene models files. A
// file is kept if a local copy is large enough, copied if a prior run
// saved it elsewhere, and downloaded otherwise. The run writes a
// checkpoint with all expected files and a taxonomy table with one row
// per processed project.
package iodownload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/gnames/gnmyco/pkg/plan"
	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	// LockFile prevents concurrent runs in the same output directory.
	LockFile = ".gnmyco.lock"
	// TaxonomyFile is the table of processed projects.
	TaxonomyFile = "JGI_taxonomy.tsv"
)

var taxonomyHeader = []string{
	"Short name", "Accession", "TaxId", "Name", "Path",
	"Assembly file", "GFF file", "lineage",
}

// CheckpointFile returns the name of the checkpoint for a given day.
func CheckpointFile(t time.Time) string {
	return "JGI_download_list_" + t.Format("2006-01-02") + ".txt"
}

// Downloader runs downloads into one output directory.
type Downloader struct {
	cfg      config.DownloadConfig
	transfer mycocosm.Transfer
	policy   plan.Policy
	previous map[string]string
	now      func() time.Time
	progress bool
}

// Option configures a Downloader.
type Option func(*Downloader)

// OptExcluded sets project codes to skip.
func OptExcluded(codes map[string]struct{}) Option {
	return func(d *Downloader) {
		d.policy.Excluded = codes
	}
}

// OptPrevious sets the prior-locations index (filename to directory).
func OptPrevious(prev map[string]string) Option {
	return func(d *Downloader) {
		d.previous = prev
	}
}

// OptProgress enables a progress bar.
func OptProgress(b bool) Option {
	return func(d *Downloader) {
		d.progress = b
	}
}

// OptNow sets the clock used for the checkpoint name.
func OptNow(fn func() time.Time) Option {
	return func(d *Downloader) {
		d.now = fn
	}
}

// New creates a Downloader. Transfer may be nil for simulated runs.
func New(
	cfg config.DownloadConfig,
	tr mycocosm.Transfer,
	opts ...Option,
) *Downloader {
	res := &Downloader{
		cfg:      cfg,
		transfer: tr,
		policy:   plan.Policy{UseRestricted: cfg.UseRestricted},
		previous: make(map[string]string),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Run processes all projects of the catalog. A failed copy from a prior
// location stops the run, a failed download is counted and reported.
func (d *Downloader) Run(
	ctx context.Context,
	cat *project.Catalog,
) (plan.Counters, error) {
	var cnt plan.Counters
	cnt.Projects = cat.Len()
	out := d.cfg.OutputDir
	log := slog.With("run", uuid.NewString())

	if err := os.MkdirAll(out, 0755); err != nil {
		return cnt, CreateDirError(out, err)
	}

	lockPath := filepath.Join(out, LockFile)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err == nil && !ok {
		err = errors.New("lock is held by another process")
	}
	if err != nil {
		return cnt, LockError(lockPath, err)
	}
	defer func() { _ = lock.Unlock() }()

	projects := cat.Projects()
	checkpoint := CheckpointFile(d.now())
	if err = writeCheckpoint(filepath.Join(out, checkpoint), projects); err != nil {
		return cnt, err
	}

	taxPath := filepath.Join(out, TaxonomyFile)
	f, err := os.Create(taxPath)
	if err != nil {
		return cnt, ReportError(taxPath, err)
	}
	defer f.Close()
	tw := bufio.NewWriter(f)
	if err = writeRow(tw, taxonomyHeader); err != nil {
		return cnt, ReportError(taxPath, err)
	}

	if d.cfg.Simulate {
		log.Info("Simulating download", "dir", out, "projects", cat.Len())
	} else {
		log.Info("Starting download", "dir", out, "projects", cat.Len())
	}

	var bar *pb.ProgressBar
	if d.progress {
		bar = pb.Full.Start(len(projects))
		bar.Set("prefix", "Projects: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, p := range projects {
		if bar != nil {
			bar.Increment()
		}
		if err = ctx.Err(); err != nil {
			return cnt, err
		}

		if skip := d.policy.Check(p); skip != plan.NoSkip {
			log.Debug("Skipping project", "code", p.Code, "reason", skip)
			continue
		}

		if m := plan.Missing(p); m != plan.MissingNone {
			cnt.Missing++
			gn.Warn("Missing file for <em>%s</em> (%s). See %s",
				p.Code, m, checkpoint)
			log.Warn("Missing file", "code", p.Code, "missing", m.String())
			continue
		}

		cnt.Needed += 2
		rel := path.Join(p.PlacementPath, p.Code)
		dir := filepath.Join(out, filepath.FromSlash(rel))
		if err = os.MkdirAll(dir, 0755); err != nil {
			return cnt, CreateDirError(dir, err)
		}

		if err = writeRow(tw, taxonomyRow(p, rel)); err != nil {
			return cnt, ReportError(taxPath, err)
		}

		a := p.Assembly
		err = d.obtain(ctx, log, &cnt, dir, a.Filename, a.URL, a.Size)
		if err != nil {
			return cnt, err
		}
		g := p.Annotation
		err = d.obtain(ctx, log, &cnt, dir, g.Filename, g.URL, g.Size)
		if err != nil {
			return cnt, err
		}
	}

	log.Info("Download finished",
		"needed", cnt.Needed,
		"obtained", cnt.Obtained(),
		"failed", cnt.Failed,
	)
	return cnt, nil
}

// obtain makes sure one file is present in dir.
func (d *Downloader) obtain(
	ctx context.Context,
	log *slog.Logger,
	cnt *plan.Counters,
	dir, name, url string,
	size int64,
) error {
	dest := filepath.Join(dir, name)
	prevDir, inPrior := d.previous[name]
	in := plan.Input{
		ExpectedSize: size,
		InPrior:      inPrior,
		SizeRatio:    d.cfg.SizeRatio,
	}
	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		in.LocalExists = true
		in.LocalSize = info.Size()
	}

	dec := plan.Decide(in)
	switch dec {
	case plan.CopyFromPrior:
		if d.cfg.Simulate {
			break
		}
		src := filepath.Join(prevDir, name)
		if err := copyFile(src, dest); err != nil {
			return CopyError(src, dir, err)
		}
	case plan.Fetch:
		if d.cfg.Simulate {
			return nil
		}
		if d.transfer == nil {
			return errors.New("no transfer for a real download")
		}
		if err := d.transfer.Fetch(ctx, url, dest); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			cnt.Failed++
			gn.Warn("Could not download <em>%s</em>", dest)
			log.Warn("Download failed", "file", dest, "error", err)
			return nil
		}
	}

	log.Debug("File obtained", "file", dest, "decision", dec.String())
	cnt.Add(dec, d.cfg.Simulate)
	return nil
}

func writeCheckpoint(path string, projects []*project.Project) error {
	f, err := os.Create(path)
	if err != nil {
		return ReportError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range projects {
		fmt.Fprintf(w, "%s (%s)\n", p.Code, p.DisplayName)
		fmt.Fprintf(w, "Assembly:\t%s\n", p.AssemblyFile())
		fmt.Fprintf(w, "GFF:\t\t%s\n\n", p.AnnotationFile())
	}
	if err = w.Flush(); err != nil {
		return ReportError(path, err)
	}
	return nil
}

func taxonomyRow(p *project.Project, rel string) []string {
	return []string{
		p.Code,
		p.Code,
		p.TaxID,
		p.DisplayName,
		rel,
		p.AssemblyFile(),
		p.AnnotationFile(),
		p.LineageString(),
	}
}

// writeRow writes one tab-separated line and flushes it, so the table
// can be inspected while the run continues.
func writeRow(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
		return err
	}
	return w.Flush()
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}
