package listing

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gnames/gnmyco/pkg/rules"
)

const (
	gffSuffix  = ".gff.gz"
	gff3Suffix = ".gff3.gz"
)

// Resolver selects assembly and gene models files for catalog projects.
type Resolver struct {
	rules *rules.Rules
	// overrides maps project codes to the only acceptable gene models file.
	overrides map[string]string
}

// NewResolver creates a Resolver. Overrides map project codes to
// gene models filenames that must be selected regardless of other rules.
func NewResolver(r *rules.Rules, overrides map[string]string) *Resolver {
	if overrides == nil {
		overrides = make(map[string]string)
	}
	return &Resolver{rules: r, overrides: overrides}
}

// Annotate walks the listing tree and sets Assembly and Annotation of
// catalog projects. It reads Code and DisplayName of projects and writes
// only their file selections. Problems are reported in the returned
// Diagnostics and never stop the walk.
func (r *Resolver) Annotate(cat *project.Catalog, tree *Tree) *Diagnostics {
	d := newDiagnostics()
	for i := range tree.Organisms {
		r.annotateOrganism(cat, &tree.Organisms[i], d)
	}

	for _, p := range cat.Projects() {
		if p.Annotation == nil {
			d.missing = append(d.missing, p.Code)
		}
	}
	slices.Sort(d.missing)

	for _, pc := range d.Projects {
		p, ok := cat.Get(pc.Code)
		if !ok || p.Annotation == nil {
			continue
		}
		for i := range pc.Candidates {
			if pc.Candidates[i].Filename == p.Annotation.Filename {
				pc.Candidates[i].Selected = true
			}
		}
	}
	return d
}

func (r *Resolver) annotateOrganism(
	cat *project.Catalog,
	o *Organism,
	d *Diagnostics,
) {
	files, ok := o.Folder(FilesFolder)
	if !ok {
		slog.Warn("No Files folder in listing, skipping", "project", o.Name)
		d.warn(Warning{Kind: MissingFiles, Code: o.Name})
		return
	}

	var unmasked, masked, genes *Folder
	if asm, ok := files.Folder(AssemblyFolder); ok {
		unmasked, _ = asm.Folder(UnmaskedFolder)
		masked, _ = asm.Folder(MaskedFolder)
	}
	if ann, ok := files.Folder(AnnotationFolder); ok {
		if filtered, ok := ann.Folder(FilteredFolder); ok {
			genes, _ = filtered.Folder(GenesFolder)
		}
	}

	if unmasked == nil {
		slog.Warn("No unmasked assembly folder", "project", o.Name)
		d.warn(Warning{Kind: MissingAssembly, Code: o.Name})
	} else {
		r.selectAssembly(cat, o.Name, unmasked, OriginUnmasked, d)
	}

	if p, ok := cat.Get(o.Name); ok && p.Assembly == nil {
		if masked == nil {
			slog.Warn("No assembly and no masked fallback", "project", o.Name)
		} else {
			slog.Info("Trying masked assembly", "project", o.Name)
			r.selectAssembly(cat, o.Name, masked, OriginMasked, d)
		}
	}

	if genes == nil {
		slog.Warn("No gene models folder, skipping annotation",
			"project", o.Name)
		d.warn(Warning{Kind: MissingGenes, Code: o.Name})
		return
	}
	for _, f := range genes.AllFiles() {
		r.considerGFF(cat, f, d)
	}
}

// selectAssembly scans a masked or unmasked assembly folder. The last
// acceptable file wins.
func (r *Resolver) selectAssembly(
	cat *project.Catalog,
	orgName string,
	f *Folder,
	origin Origin,
	d *Diagnostics,
) {
	var found []string
	for _, v := range f.AllFiles() {
		code := v.ProjectCode()
		if r.isExcludedAssembly(code, v.Filename) {
			continue
		}
		found = append(found, v.Filename)
		p, ok := cat.Get(code)
		if !ok {
			slog.Warn("Listing project is not in genome list",
				"project", code, "file", v.Filename)
			d.warn(Warning{Kind: NotInCatalog, Code: code, Filename: v.Filename})
			continue
		}
		p.Assembly = &project.Assembly{
			Filename: v.Filename,
			URL:      v.URL,
			Size:     v.Size,
		}
	}

	switch len(found) {
	case 0:
		slog.Warn("No assembly file", "project", orgName, "origin", origin)
		if origin == OriginUnmasked {
			d.warn(Warning{Kind: NoAssembly, Code: orgName})
		}
	case 1:
	default:
		slog.Warn("More than one assembly file",
			"project", orgName,
			"origin", origin,
			"files", strings.Join(found, ", "),
		)
		d.warn(Warning{
			Kind: MultipleAssemblies,
			Code: orgName,
			Msg:  origin.String() + ": " + strings.Join(found, ", "),
		})
	}
}

func (r *Resolver) isExcludedAssembly(code, filename string) bool {
	return r.rules.IsExcludedAssembly(filename) ||
		r.rules.IsExcludedProject(code) ||
		strings.HasSuffix(filename, "txt")
}

// considerGFF applies gene models precedence to one listing entry.
// Rules are evaluated in order and the first match wins: override,
// ignored filename, skip keyword, file suffix, running best.
func (r *Resolver) considerGFF(cat *project.Catalog, f File, d *Diagnostics) {
	code := f.ProjectCode()
	if r.rules.IsExcludedProject(code) {
		return
	}
	p, ok := cat.Get(code)
	if !ok {
		slog.Warn("Listing project is not in genome list",
			"project", code, "file", f.Filename)
		d.warn(Warning{Kind: NotInCatalog, Code: code, Filename: f.Filename})
		return
	}

	ts, err := ParseTimestamp(f.Timestamp, r.rules.TimeZones)
	idx := d.addCandidate(code, Candidate{
		Filename:  f.Filename,
		URL:       f.URL,
		Size:      f.Size,
		Timestamp: ts,
		Origin:    OriginGenes,
	})
	if err != nil {
		slog.Warn("Cannot parse gene models timestamp",
			"project", code, "file", f.Filename, "error", err)
		d.warn(Warning{
			Kind: BadTimestamp, Code: code, Filename: f.Filename, Msg: err.Error(),
		})
		d.skipCandidate(code, idx)
		return
	}

	ann := &project.Annotation{
		Filename:  f.Filename,
		URL:       f.URL,
		Size:      f.Size,
		Timestamp: ts,
	}

	if override, ok := r.overrides[code]; ok {
		if f.Filename == override {
			p.Annotation = ann
		} else {
			d.skipCandidate(code, idx)
		}
		return
	}

	if r.rules.IsIgnoredGFF(f.Filename) ||
		r.rules.HasGFFSkipKeyword(f.Filename) ||
		!isGFF(f.Filename) {
		d.skipCandidate(code, idx)
		return
	}

	cur := p.Annotation
	switch {
	case cur == nil:
		p.Annotation = ann
	case isGFF3(f.Filename) && isGFF2(cur.Filename):
		p.Annotation = ann
	case isGFF3(f.Filename) && isGFF3(cur.Filename),
		isGFF2(f.Filename) && isGFF2(cur.Filename):
		if ts.After(cur.Timestamp) {
			p.Annotation = ann
		}
	case isGFF2(f.Filename) && isGFF3(cur.Filename):
	default:
		slog.Warn("Unexpected gene models file",
			"project", code, "selected", cur.Filename, "file", f.Filename)
		d.warn(Warning{
			Kind:     UnexpectedGFF,
			Code:     code,
			Filename: f.Filename,
			Msg:      "selected " + cur.Filename,
		})
	}
}

func isGFF(filename string) bool {
	return isGFF2(filename) || isGFF3(filename)
}

func isGFF2(filename string) bool {
	return strings.HasSuffix(filename, gffSuffix)
}

func isGFF3(filename string) bool {
	return strings.HasSuffix(filename, gff3Suffix)
}
