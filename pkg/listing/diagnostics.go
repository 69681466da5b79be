package listing

import (
	"fmt"
	"time"
)

// Origin tells which listing collection a candidate came from.
type Origin int

const (
	OriginUnmasked Origin = iota
	OriginMasked
	OriginGenes
)

func (o Origin) String() string {
	switch o {
	case OriginUnmasked:
		return "unmasked"
	case OriginMasked:
		return "masked"
	case OriginGenes:
		return "genes"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// Candidate is a gene models file considered for a project.
type Candidate struct {
	Filename  string
	URL       string
	Size      int64
	Timestamp time.Time
	Origin    Origin
	// Skipped is true when a rule rejected the file.
	Skipped bool
	// Selected is true for the file that ended up chosen.
	Selected bool
}

// ProjectCandidates groups candidates of one project in listing order.
type ProjectCandidates struct {
	Code       string
	Candidates []Candidate
}

// WarningKind classifies non-fatal resolution problems.
type WarningKind int

const (
	// MissingFiles means an organism has no "Files" folder.
	MissingFiles WarningKind = iota
	// MissingAssembly means an organism has no unmasked assembly folder.
	MissingAssembly
	// MissingGenes means there is no filtered gene models folder.
	MissingGenes
	// MultipleAssemblies means more than one assembly passed the filters.
	MultipleAssemblies
	// NoAssembly means no unmasked assembly passed the filters.
	NoAssembly
	// NotInCatalog means a listing entry belongs to an unknown project.
	NotInCatalog
	// UnexpectedGFF means a gene models file did not fit any rule.
	UnexpectedGFF
	// BadTimestamp means a gene models timestamp could not be parsed.
	BadTimestamp
)

var warningNames = map[WarningKind]string{
	MissingFiles:       "missing Files folder",
	MissingAssembly:    "missing unmasked assembly folder",
	MissingGenes:       "missing gene models folder",
	MultipleAssemblies: "multiple assemblies",
	NoAssembly:         "no unmasked assembly",
	NotInCatalog:       "project not in catalog",
	UnexpectedGFF:      "unexpected gene models file",
	BadTimestamp:       "bad timestamp",
}

func (k WarningKind) String() string {
	if res, ok := warningNames[k]; ok {
		return res
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a non-fatal problem found during resolution.
type Warning struct {
	Kind     WarningKind
	Code     string
	Filename string
	Msg      string
}

func (w Warning) String() string {
	res := w.Kind.String() + ": " + w.Code
	if w.Filename != "" {
		res += " " + w.Filename
	}
	if w.Msg != "" {
		res += " (" + w.Msg + ")"
	}
	return res
}

// Diagnostics collects everything the resolver saw and decided.
type Diagnostics struct {
	// Projects lists gene models candidates in order of first appearance.
	Projects []*ProjectCandidates
	// Warnings lists non-fatal problems in the order they were found.
	Warnings []Warning
	// missing lists sorted codes of catalog projects without
	// an annotation selection.
	missing []string
	index   map[string]*ProjectCandidates
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{index: make(map[string]*ProjectCandidates)}
}

// MissingAnnotation returns codes of projects without a gene models file.
func (d *Diagnostics) MissingAnnotation() []string {
	return d.missing
}

// Candidates returns the candidates recorded for a project.
func (d *Diagnostics) Candidates(code string) []Candidate {
	if pc, ok := d.index[code]; ok {
		return pc.Candidates
	}
	return nil
}

// WarningsOf returns warnings of a given kind.
func (d *Diagnostics) WarningsOf(kind WarningKind) []Warning {
	var res []Warning
	for _, v := range d.Warnings {
		if v.Kind == kind {
			res = append(res, v)
		}
	}
	return res
}

func (d *Diagnostics) warn(w Warning) {
	d.Warnings = append(d.Warnings, w)
}

// addCandidate records a candidate and returns its index.
func (d *Diagnostics) addCandidate(code string, c Candidate) int {
	pc, ok := d.index[code]
	if !ok {
		pc = &ProjectCandidates{Code: code}
		d.index[code] = pc
		d.Projects = append(d.Projects, pc)
	}
	pc.Candidates = append(pc.Candidates, c)
	return len(pc.Candidates) - 1
}

func (d *Diagnostics) skipCandidate(code string, i int) {
	d.index[code].Candidates[i].Skipped = true
}
