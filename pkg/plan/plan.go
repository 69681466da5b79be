// Package plan decides what to do with every file of a download run.
//
// The package is pure: it never touches the file system. The downloader
// collects facts about local files and prior locations and asks Decide
// for the action.
package plan

import (
	"fmt"

	"github.com/gnames/gnmyco/pkg/project"
)

// DefaultSizeRatio is the share of the expected size a local file must
// exceed to be treated as already downloaded.
const DefaultSizeRatio = 0.9

// Decision is the action planned for one file.
type Decision int

const (
	// PreExisting means a local copy is present and large enough.
	PreExisting Decision = iota
	// CopyFromPrior means the file is known from a previous run and is
	// copied from there.
	CopyFromPrior
	// Fetch means the file has to be downloaded.
	Fetch
)

func (d Decision) String() string {
	switch d {
	case PreExisting:
		return "pre-existing"
	case CopyFromPrior:
		return "copy-from-prior"
	case Fetch:
		return "fetch"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Input contains facts about a file needed for a decision.
type Input struct {
	// LocalExists is true if the destination file exists.
	LocalExists bool
	// LocalSize is the size of the destination file.
	LocalSize int64
	// ExpectedSize is the size given by the file listing.
	ExpectedSize int64
	// InPrior is true if the filename is in the prior-locations index.
	InPrior bool
	// SizeRatio overrides DefaultSizeRatio when positive.
	SizeRatio float64
}

// Decide returns the action for a file. Rules are checked in order:
// a large enough local file, a prior location, a download. A local file
// is large enough at SizeRatio of the expected size or more. An empty
// local file never counts as complete.
func Decide(in Input) Decision {
	ratio := in.SizeRatio
	if ratio <= 0 {
		ratio = DefaultSizeRatio
	}
	if in.LocalExists && in.LocalSize > 0 &&
		float64(in.LocalSize) >= ratio*float64(in.ExpectedSize) {
		return PreExisting
	}
	if in.InPrior {
		return CopyFromPrior
	}
	return Fetch
}

// MissingKind tells which selections of a project are absent.
type MissingKind int

const (
	MissingNone MissingKind = iota
	MissingAssembly
	MissingAnnotation
	MissingBoth
)

func (m MissingKind) String() string {
	switch m {
	case MissingNone:
		return ""
	case MissingAssembly:
		return "assembly"
	case MissingAnnotation:
		return "gff"
	case MissingBoth:
		return "assembly and gff"
	}
	return fmt.Sprintf("MissingKind(%d)", int(m))
}

// Missing reports which file selections a project lacks. A project
// with any missing selection is skipped by the downloader.
func Missing(p *project.Project) MissingKind {
	switch {
	case p.Assembly == nil && p.Annotation == nil:
		return MissingBoth
	case p.Assembly == nil:
		return MissingAssembly
	case p.Annotation == nil:
		return MissingAnnotation
	}
	return MissingNone
}

// Skip is the reason a project is not processed.
type Skip int

const (
	NoSkip Skip = iota
	SkipRestricted
	SkipExcluded
)

func (s Skip) String() string {
	switch s {
	case NoSkip:
		return ""
	case SkipRestricted:
		return "restricted"
	case SkipExcluded:
		return "excluded"
	}
	return fmt.Sprintf("Skip(%d)", int(s))
}

// Policy selects the projects of a run.
type Policy struct {
	// UseRestricted includes projects with restricted data usage.
	UseRestricted bool
	// Excluded contains project codes from the user exclusion list.
	Excluded map[string]struct{}
}

// Check returns NoSkip if the project has to be processed.
func (pl Policy) Check(p *project.Project) Skip {
	if p.IsRestricted && !pl.UseRestricted {
		return SkipRestricted
	}
	if _, ok := pl.Excluded[p.Code]; ok {
		return SkipExcluded
	}
	return NoSkip
}

// Counters accumulate results of a run.
type Counters struct {
	// Projects is the number of projects in the catalog.
	Projects int
	// Needed is the number of files of processed projects.
	Needed      int
	Copied      int
	Downloaded  int
	PreExisting int
	// InPrior counts files found in prior locations during simulation.
	InPrior int
	// Failed counts downloads that did not succeed.
	Failed int
	// Missing counts projects skipped for missing selections.
	Missing int
}

// Add counts a file that was obtained with the given decision.
// When simulate is true, copies from prior locations are counted
// as InPrior and downloads are not counted.
func (c *Counters) Add(d Decision, simulate bool) {
	switch d {
	case PreExisting:
		c.PreExisting++
	case CopyFromPrior:
		if simulate {
			c.InPrior++
		} else {
			c.Copied++
		}
	case Fetch:
		if !simulate {
			c.Downloaded++
		}
	}
}

// Obtained is the number of files that are available after the run.
func (c Counters) Obtained() int {
	return c.Copied + c.Downloaded + c.PreExisting + c.InPrior
}

// Summary formats the final tally line.
func (c Counters) Summary() string {
	return fmt.Sprintf(
		"Got %d (copied) + %d (downloaded) + %d (pre-existing) + %d (in-previous) = %d",
		c.Copied, c.Downloaded, c.PreExisting, c.InPrior, c.Obtained(),
	)
}
