package iotaxonomy_test

import (
	"archive/tar"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/internal/iotaxonomy"
	"github.com/gnames/gnmyco/pkg/errcode"
	"github.com/gnames/gnmyco/pkg/lineage"
	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodesDmp = `1	|	1	|	no rank	|
2759	|	131567	|	superkingdom	|
131567	|	1	|	no rank	|
4751	|	33154	|	kingdom	|
33154	|	2759	|	clade	|
5052	|	4751	|	genus	|
162425	|	5052	|	species	|
900	|	901	|	species	|
901	|	900	|	genus	|
`

const namesDmp = `1	|	all	|		|	synonym	|
1	|	root	|		|	scientific name	|
2759	|	Eukaryota	|		|	scientific name	|
131567	|	cellular organisms	|		|	scientific name	|
4751	|	Fungi	|		|	scientific name	|
4751	|	fungi	|		|	common name	|
33154	|	Opisthokonta	|		|	scientific name	|
5052	|	Aspergillus	|		|	scientific name	|
162425	|	Aspergillus nidulans	|		|	scientific name	|
`

const mergedDmp = `227321	|	162425	|
`

func writeDump(t *testing.T, files map[string]string) string {
	path := filepath.Join(t.TempDir(), "taxdump.tar.gz")
	f, err := os.Create(path)
	require.Nil(t, err)
	defer f.Close()

	gz := pgzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(body))}
		require.Nil(t, tw.WriteHeader(hdr))
		_, err = tw.Write([]byte(body))
		require.Nil(t, err)
	}
	require.Nil(t, tw.Close())
	require.Nil(t, gz.Close())
	return path
}

func openStore(t *testing.T) *iotaxonomy.Store {
	dump := writeDump(t, map[string]string{
		"nodes.dmp":  nodesDmp,
		"names.dmp":  namesDmp,
		"merged.dmp": mergedDmp,
		"readme.txt": "ignored",
	})
	dbPath := filepath.Join(t.TempDir(), "cache", "taxonomy.sqlite")

	stats, err := iotaxonomy.Import(context.Background(), dump, dbPath, 2)
	require.Nil(t, err)
	assert.Equal(t, 9, stats.Nodes)
	assert.Equal(t, 8, stats.Names)
	assert.Equal(t, 1, stats.Merged)

	st, err := iotaxonomy.Open(dbPath)
	require.Nil(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLineage(t *testing.T) {
	assert := assert.New(t)
	st := openStore(t)
	full := []string{
		"root", "cellular organisms", "Eukaryota", "Opisthokonta",
		"Fungi", "Aspergillus", "Aspergillus nidulans",
	}

	tests := []struct {
		msg, taxID string
		res        []string
	}{
		{"species", "162425", full},
		{"spaces", " 162425 ", full},
		{"merged", "227321", full},
		{"genus", "5052", full[:6]},
		{"root", "1", []string{"root"}},
	}

	for _, v := range tests {
		res, err := st.Lineage(v.taxID)
		assert.Nil(err, v.msg)
		assert.Equal(v.res, res, v.msg)
	}
}

func TestLineageErrors(t *testing.T) {
	assert := assert.New(t)
	st := openStore(t)

	for _, v := range []string{"42", "", "abc"} {
		_, err := st.Lineage(v)
		assert.ErrorIs(err, lineage.ErrUnknownTaxID, v)
	}

	_, err := st.Lineage("900")
	assert.ErrorContains(err, "circular")
	assert.NotErrorIs(err, lineage.ErrUnknownTaxID)
}

func TestLineageByName(t *testing.T) {
	assert := assert.New(t)
	st := openStore(t)

	res, err := st.LineageByName("Aspergillus nidulans")
	assert.Nil(err)
	assert.Equal("Aspergillus nidulans", res[len(res)-1])

	_, err = st.LineageByName("fungi")
	assert.ErrorIs(err, lineage.ErrUnknownTaxID)
}

func TestImportErrors(t *testing.T) {
	assert := assert.New(t)
	dbPath := filepath.Join(t.TempDir(), "taxonomy.sqlite")

	_, err := iotaxonomy.Import(context.Background(), "/nowhere.tar.gz", dbPath, 2)
	assert.NotNil(err)

	dump := writeDump(t, map[string]string{"names.dmp": namesDmp})
	_, err = iotaxonomy.Import(context.Background(), dump, dbPath, 2)
	assert.NotNil(err)
	_, err = os.Stat(dbPath)
	assert.True(os.IsNotExist(err))

	dump = writeDump(t, map[string]string{"nodes.dmp": "x\t|\t1\t|\n"})
	_, err = iotaxonomy.Import(context.Background(), dump, dbPath, 2)
	assert.NotNil(err)

	_, err = iotaxonomy.Open(dbPath)
	var gnErr *gn.Error
	assert.True(errors.As(err, &gnErr))
	assert.Equal(errcode.TaxonomyNotFoundError, gnErr.Code)
}

func TestCanonicalizer(t *testing.T) {
	assert := assert.New(t)
	c := iotaxonomy.NewCanonicalizer()

	tests := []struct {
		msg, name, res string
		ok             bool
	}{
		{"strain", "Aspergillus nidulans FGSC A4", "Aspergillus nidulans", true},
		{"author", "Amanita muscaria (L.) Lam.", "Amanita muscaria", true},
		{"genus", "Aspergillus", "Aspergillus", true},
		{"junk", "1234", "", false},
	}

	for _, v := range tests {
		res, ok := c.Canonical(v.name)
		assert.Equal(v.ok, ok, v.msg)
		assert.Equal(v.res, res, v.msg)
	}
}
