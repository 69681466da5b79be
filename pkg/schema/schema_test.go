package schema_test

import (
	"testing"
	"time"

	"github.com/gnames/gnmyco/pkg/project"
	"github.com/gnames/gnmyco/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestNewProject(t *testing.T) {
	assert := assert.New(t)
	ts := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := &project.Project{
		Code:         "Aspnid1",
		TaxID:        "227321",
		DisplayName:  "Aspergillus nidulans v1.0",
		OrganismName: "Aspergillus nidulans",
		Assembly:     &project.Assembly{Filename: "a.fasta.gz", URL: "/a", Size: 5},
		Annotation: &project.Annotation{
			Filename: "a.gff3.gz", URL: "/g", Size: 7, Timestamp: ts,
		},
	}
	p.SetLineage([]string{"root", "fungi", "aspergillus nidulans"})

	res := schema.NewProject(p, "run")
	assert.Equal(schema.ProjectID("Aspnid1"), res.ID)
	assert.Len(res.ID, 36)
	assert.Equal("root,fungi,aspergillus nidulans", res.Lineage)
	assert.Equal(int64(7), res.AnnotationSize)
	assert.True(res.AnnotationDate.Valid)
	assert.Equal(len(res.Columns()), len(res.Values()))

	lin := schema.NewLineage(p)
	assert.Len(lin, 3)
	assert.Equal(2, lin[2].Position)
	assert.Equal(res.ID, lin[0].ProjectID)

	p.Annotation = nil
	res = schema.NewProject(p, "run")
	assert.False(res.AnnotationDate.Valid)
	assert.Equal("", res.AnnotationFile)
}

func TestTableNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("runs", schema.Run{}.TableName())
	assert.Equal("projects", schema.Project{}.TableName())
	assert.Equal("lineage_taxa", schema.LineageTaxon{}.TableName())
	assert.Len(schema.AllModels(), 3)
}
