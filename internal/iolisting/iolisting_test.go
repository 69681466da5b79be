package iolisting_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gnmyco/internal/iolisting"
	"github.com/gnames/gnmyco/pkg/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const single = `<organismDownloads name="Trire2">
  <folder name="Files">
    <folder name="Assembly">
      <folder name="Genome Assembly (unmasked)">
        <file filename="Trire2_scaffolds.fasta.gz" url="/portal/Trire2/download/Trire2_scaffolds.fasta.gz" sizeInBytes="42" timestamp="Sun Oct 12 11:02:03 PDT 2014"/>
      </folder>
    </folder>
  </folder>
</organismDownloads>`

func TestLoad(t *testing.T) {
	tree, err := iolisting.Load(filepath.Join("testdata", "listing.xml"))
	require.NoError(t, err)
	require.Len(t, tree.Organisms, 2)

	org := tree.Organisms[0]
	assert.Equal(t, "Aspnid1", org.Name)
	files, ok := org.Folder(listing.FilesFolder)
	require.True(t, ok)
	asm, ok := files.Folder(listing.AssemblyFolder)
	require.True(t, ok)
	unmasked, ok := asm.Folder(listing.UnmaskedFolder)
	require.True(t, ok)
	require.Len(t, unmasked.Files, 2)
	f := unmasked.Files[0]
	assert.Equal(t, "Aspnid1_AssemblyScaffolds.fasta.gz", f.Filename)
	assert.Equal(t, int64(9543221), f.Size)
	assert.Equal(t, "Aspnid1", f.ProjectCode())
	assert.Equal(t, "Sun Oct 12 11:02:03 PDT 2014", f.Timestamp)

	ann, ok := files.Folder(listing.AnnotationFolder)
	require.True(t, ok)
	filtered, ok := ann.Folder(listing.FilteredFolder)
	require.True(t, ok)
	genes, ok := filtered.Folder(listing.GenesFolder)
	require.True(t, ok)
	assert.Len(t, genes.AllFiles(), 2)

	_, ok = tree.Organisms[1].Folder(listing.FilesFolder)
	assert.False(t, ok)
}

func TestDecodeSingle(t *testing.T) {
	tree, err := iolisting.Decode(strings.NewReader(single))
	require.NoError(t, err)
	require.Len(t, tree.Organisms, 1)
	assert.Equal(t, "Trire2", tree.Organisms[0].Name)
}

func TestDecodeErrors(t *testing.T) {
	_, err := iolisting.Decode(strings.NewReader(""))
	assert.Error(t, err)
	_, err = iolisting.Decode(strings.NewReader("<Data><organismDownloads>"))
	assert.Error(t, err)

	_, err = iolisting.Load(filepath.Join(t.TempDir(), "none.xml"))
	assert.Error(t, err)
}

func TestCombined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MycoCosm_data.xml")

	c, err := iolisting.LoadCombined(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	code, err := c.Append([]byte(single))
	require.NoError(t, err)
	assert.Equal(t, "Trire2", code)
	require.NoError(t, c.Write(path))

	_, err = c.Append([]byte(`<other name="x"/>`))
	assert.Error(t, err)

	c, err = iolisting.LoadCombined(path)
	require.NoError(t, err)
	assert.True(t, c.Has("Trire2"))
	assert.False(t, c.Has("Aspnid1"))

	tree, err := iolisting.Load(path)
	require.NoError(t, err)
	require.Len(t, tree.Organisms, 1)
	files, ok := tree.Organisms[0].Folder(listing.FilesFolder)
	require.True(t, ok)
	assert.Equal(t, int64(42), files.AllFiles()[0].Size)
}

func TestCombinedKeepsExisting(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "listing.xml"))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "listing.xml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	c, err := iolisting.LoadCombined(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Has("Phchr2"))

	_, err = c.Append([]byte(single))
	require.NoError(t, err)
	require.NoError(t, c.Write(path))

	tree, err := iolisting.Load(path)
	require.NoError(t, err)
	require.Len(t, tree.Organisms, 3)
	assert.Equal(t, "Aspnid1", tree.Organisms[0].Name)
	files, _ := tree.Organisms[0].Folder(listing.FilesFolder)
	assert.Len(t, files.AllFiles(), 5)
}

func TestDecodeBadSize(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(old)

	data := strings.Replace(single, `sizeInBytes="42"`, `sizeInBytes="4x2"`, 1)
	tree, err := iolisting.Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, tree.Organisms, 1)

	files := tree.Organisms[0].Folders[0].Folders[0].Folders[0].Files
	require.Len(t, files, 1)
	assert.Equal(t, int64(0), files[0].Size)
	assert.Contains(t, buf.String(), "Bad file size in listing")
	assert.Contains(t, buf.String(), "Trire2_scaffolds.fasta.gz")
}
