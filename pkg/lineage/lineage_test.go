package lineage_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gnames/gnmyco/pkg/lineage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	ids   map[string][]string
	names map[string][]string
	err   error
}

func (f fakeBackend) Lineage(taxID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.ids[taxID]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("taxon %s: %w", taxID, lineage.ErrUnknownTaxID)
}

func (f fakeBackend) LineageByName(name string) ([]string, error) {
	if res, ok := f.names[name]; ok {
		return res, nil
	}
	return nil, lineage.ErrUnknownTaxID
}

type firstTwo struct{}

func (firstTwo) Canonical(name string) (string, bool) {
	ws := strings.Fields(name)
	if len(ws) < 2 {
		return "", false
	}
	return ws[0] + " " + ws[1], true
}

var remap = map[string]string{"5145": "2587412"}

func backend() fakeBackend {
	return fakeBackend{
		ids: map[string][]string{
			"2587412": {"Eukaryota", "Fungi", "Dikarya", "Ascomycota"},
			"162425":  {"Eukaryota", "Fungi", "Dikarya"},
		},
		names: map[string][]string{
			"Aspergillus nidulans": {"Fungi", "Aspergillus nidulans"},
		},
	}
}

func TestResolve(t *testing.T) {
	r := lineage.New(backend(), remap)

	res, err := r.Resolve("Sorma1", " 5145 ", "Sordaria macrospora")
	require.NoError(t, err)
	assert.Equal(t, "2587412", res.TaxID)
	assert.Equal(t, []string{"eukaryota", "fungi", "dikarya", "ascomycota"},
		res.Names)
	assert.Contains(t, res.Set, "dikarya")
	assert.False(t, res.ByName)
	assert.NotEmpty(t, res.Names)

	res, err = r.Resolve("Aspnid1", "162425", "Aspergillus nidulans")
	require.NoError(t, err)
	assert.Equal(t, "162425", res.TaxID)
}

func TestResolveUnknown(t *testing.T) {
	r := lineage.New(backend(), remap)
	res, err := r.Resolve("Aspnid1", "1", "Aspergillus nidulans FGSC A4")
	require.Error(t, err)
	assert.Empty(t, res.Names)
	assert.Equal(t, "1", res.TaxID)

	var rfe *lineage.ResolutionFailedError
	require.True(t, errors.As(err, &rfe))
	assert.Equal(t, "1", rfe.TaxID)
	assert.Equal(t, "Aspnid1", rfe.ProjectCode)
	assert.ErrorIs(t, err, lineage.ErrUnknownTaxID)
}

func TestResolveByName(t *testing.T) {
	r := lineage.New(backend(), remap, lineage.OptNameFallback(firstTwo{}))

	res, err := r.Resolve("Aspnid1", "1", "Aspergillus nidulans FGSC A4")
	require.NoError(t, err)
	assert.True(t, res.ByName)
	assert.Equal(t, []string{"fungi", "aspergillus nidulans"}, res.Names)

	_, err = r.Resolve("Xxx1", "1", "Unknown thing")
	var rfe *lineage.ResolutionFailedError
	assert.True(t, errors.As(err, &rfe))
}

func TestResolveBackendError(t *testing.T) {
	boom := errors.New("database is locked")
	r := lineage.New(fakeBackend{err: boom}, remap)
	_, err := r.Resolve("Aspnid1", "162425", "")
	assert.ErrorIs(t, err, boom)
	var rfe *lineage.ResolutionFailedError
	assert.False(t, errors.As(err, &rfe))
}
