// Package schema provides database models for the exported catalog.
package schema

import (
	"database/sql"
	"time"

	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gnames/gnuuid"
)

// Run records one export of the catalog.
type Run struct {
	// ID is a random UUID of the export.
	ID string `gorm:"type:uuid;primaryKey"`

	// ExportedAt is the time of the export.
	ExportedAt time.Time `gorm:"not null"`

	// ProjectsNum is the number of exported projects.
	ProjectsNum int `gorm:"not null"`

	// Version is the gnmyco version that made the export.
	Version string `gorm:"type:varchar(50)"`
}

// Project is a reconciled MycoCosm project.
type Project struct {
	// ID is UUID v5 generated from the project code.
	ID string `gorm:"type:uuid;primaryKey"`

	// Code is the portal short name.
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`

	TaxID        string `gorm:"type:varchar(20);index"`
	DisplayName  string `gorm:"type:varchar(255);not null"`
	OrganismName string `gorm:"type:varchar(255);index"`

	// PlacementPath is the directory of the project in the download tree.
	PlacementPath string `gorm:"type:varchar(255)"`
	IsRestricted  bool   `gorm:"not null;default:false"`

	AssemblyFile string `gorm:"type:varchar(255)"`
	AssemblyURL  string `gorm:"type:text"`
	AssemblySize int64

	AnnotationFile string `gorm:"type:varchar(255)"`
	AnnotationURL  string `gorm:"type:text"`
	AnnotationSize int64
	AnnotationDate sql.NullTime

	// Lineage is a comma-separated list of taxa from root to species.
	Lineage string `gorm:"type:text"`

	RunID string `gorm:"type:uuid;not null;index"`
}

// LineageTaxon is one element of a project lineage. It allows to find
// all projects of a taxon.
type LineageTaxon struct {
	ProjectID string `gorm:"type:uuid;primaryKey"`
	Position  int    `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255);not null;index"`
}

func (Run) TableName() string {
	return "runs"
}

func (Project) TableName() string {
	return "projects"
}

func (LineageTaxon) TableName() string {
	return "lineage_taxa"
}

// ProjectID returns the database ID of a project code.
func ProjectID(code string) string {
	return gnuuid.New(code).String()
}

// NewProject converts a catalog project to a database row.
func NewProject(p *project.Project, runID string) Project {
	res := Project{
		ID:             ProjectID(p.Code),
		Code:           p.Code,
		TaxID:          p.TaxID,
		DisplayName:    p.DisplayName,
		OrganismName:   p.OrganismName,
		PlacementPath:  p.PlacementPath,
		IsRestricted:   p.IsRestricted,
		AssemblyFile:   p.AssemblyFile(),
		AnnotationFile: p.AnnotationFile(),
		Lineage:        p.LineageString(),
		RunID:          runID,
	}
	if a := p.Assembly; a != nil {
		res.AssemblyURL = a.URL
		res.AssemblySize = a.Size
	}
	if g := p.Annotation; g != nil {
		res.AnnotationURL = g.URL
		res.AnnotationSize = g.Size
		res.AnnotationDate = sql.NullTime{
			Time:  g.Timestamp,
			Valid: !g.Timestamp.IsZero(),
		}
	}
	return res
}

// NewLineage converts a project lineage to database rows.
func NewLineage(p *project.Project) []LineageTaxon {
	id := ProjectID(p.Code)
	res := make([]LineageTaxon, len(p.Lineage))
	for i, v := range p.Lineage {
		res[i] = LineageTaxon{ProjectID: id, Position: i, Name: v}
	}
	return res
}

// Columns returns column names in the order of Values.
func (Project) Columns() []string {
	return []string{
		"id", "code", "tax_id", "display_name", "organism_name",
		"placement_path", "is_restricted",
		"assembly_file", "assembly_url", "assembly_size",
		"annotation_file", "annotation_url", "annotation_size",
		"annotation_date", "lineage", "run_id",
	}
}

// Values returns a row for bulk copy.
func (p Project) Values() []any {
	return []any{
		p.ID, p.Code, p.TaxID, p.DisplayName, p.OrganismName,
		p.PlacementPath, p.IsRestricted,
		p.AssemblyFile, p.AssemblyURL, p.AssemblySize,
		p.AnnotationFile, p.AnnotationURL, p.AnnotationSize,
		p.AnnotationDate, p.Lineage, p.RunID,
	}
}
