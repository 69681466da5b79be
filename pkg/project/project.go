// Package project defines the reconciled record kept for every MycoCosm
// sequencing project (portal) and the catalog that owns those records.
//
// This is a pure package without I/O. Records are created once by the
// catalog builder, mutated in place by lineage resolution and file
// selection, and read-only afterwards.
package project

import (
	"slices"
	"strings"
	"time"
)

// Project stores information about one MycoCosm project (portal).
type Project struct {
	// Code is the portal short name (for example "Aspnid1"). It is the
	// unique key across the genome list and the file listing.
	Code string

	// TaxID is the NCBI taxon identifier after manual corrections.
	TaxID string

	// Lineage holds lower-cased ancestor names in root-to-species order.
	// It is empty if the lineage lookup failed.
	Lineage []string

	// LineageSet contains the same names as Lineage for membership tests.
	LineageSet map[string]struct{}

	// DisplayName is the portal name, including version tokens like "v2.0".
	DisplayName string

	// OrganismName is DisplayName without a trailing version token.
	OrganismName string

	// PlacementPath is a relative, slash-separated directory path that
	// encodes the lineage of the organism.
	PlacementPath string

	// IsRestricted is true for projects with restricted data usage.
	IsRestricted bool

	// Assembly is the selected genome assembly, nil if none was found.
	Assembly *Assembly

	// Annotation is the selected gene models file, nil if none was found.
	Annotation *Annotation
}

// Assembly describes the selected genome assembly file.
type Assembly struct {
	Filename string
	URL      string
	Size     int64
}

// Annotation describes the selected gene annotation (GFF) file.
type Annotation struct {
	Filename  string
	URL       string
	Size      int64
	Timestamp time.Time
}

// SetLineage stores the lineage and rebuilds the lineage set.
func (p *Project) SetLineage(names []string) {
	p.Lineage = names
	p.LineageSet = make(map[string]struct{}, len(names))
	for _, v := range names {
		p.LineageSet[v] = struct{}{}
	}
}

// LineageString returns the lineage as a comma-separated string.
func (p *Project) LineageString() string {
	return strings.Join(p.Lineage, ",")
}

// AssemblyFile returns the selected assembly filename or an empty string.
func (p *Project) AssemblyFile() string {
	if p.Assembly == nil {
		return ""
	}
	return p.Assembly.Filename
}

// AnnotationFile returns the selected annotation filename or an empty string.
func (p *Project) AnnotationFile() string {
	if p.Annotation == nil {
		return ""
	}
	return p.Annotation.Filename
}

// Catalog owns all project records keyed by project code.
// Stages receive a *Catalog and mutate only the fields they document.
type Catalog struct {
	projects map[string]*Project
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{projects: make(map[string]*Project)}
}

// Add inserts or replaces a project.
func (c *Catalog) Add(p *Project) {
	c.projects[p.Code] = p
}

// Get returns a project by code.
func (c *Catalog) Get(code string) (*Project, bool) {
	p, ok := c.projects[code]
	return p, ok
}

// Has checks if a project code is present.
func (c *Catalog) Has(code string) bool {
	_, ok := c.projects[code]
	return ok
}

// Remove deletes a project and reports if it was present.
func (c *Catalog) Remove(code string) bool {
	if _, ok := c.projects[code]; !ok {
		return false
	}
	delete(c.projects, code)
	return true
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Codes returns all project codes in sorted order.
func (c *Catalog) Codes() []string {
	res := make([]string, 0, len(c.projects))
	for k := range c.projects {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// Projects returns all projects sorted by code.
func (c *Catalog) Projects() []*Project {
	codes := c.Codes()
	res := make([]*Project, len(codes))
	for i, v := range codes {
		res[i] = c.projects[v]
	}
	return res
}
