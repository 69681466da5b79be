// Package lineage resolves NCBI taxon IDs to ordered ancestor paths.
//
// The taxonomy lookup itself is delegated to a Backend. Resolver adds the
// manual taxon ID corrections, lower-cases names and converts unknown IDs
// into a non-fatal ResolutionFailedError.
package lineage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTaxID is returned by a Backend when it does not know a taxon ID.
var ErrUnknownTaxID = errors.New("unknown taxon ID")

// Backend provides ancestor chains for taxon IDs.
type Backend interface {
	// Lineage returns scientific names of all ancestors of a taxon
	// including the taxon itself, in root-to-taxon order. It returns an
	// error wrapping ErrUnknownTaxID if the ID is not in the taxonomy.
	Lineage(taxID string) ([]string, error)
}

// NameBackend is an optional Backend extension that finds a taxon by its
// canonical scientific name.
type NameBackend interface {
	LineageByName(canonical string) ([]string, error)
}

// Canonicalizer converts an organism name to its canonical form
// ("Aspergillus nidulans FGSC A4 v1.0" -> "Aspergillus nidulans").
type Canonicalizer interface {
	Canonical(name string) (string, bool)
}

// Result is a resolved lineage.
type Result struct {
	// TaxID is the corrected taxon ID that was used for the lookup.
	TaxID string
	// Names are lower-cased ancestor names, root to species.
	Names []string
	// Set contains the same names as Names.
	Set map[string]struct{}
	// ByName is true when the lineage was found through the organism
	// name instead of the taxon ID.
	ByName bool
}

// ResolutionFailedError reports a taxon ID that is missing in the
// taxonomy. Processing of the project continues with an empty lineage.
type ResolutionFailedError struct {
	TaxID       string
	ProjectCode string
	Err         error
}

func (e *ResolutionFailedError) Error() string {
	return fmt.Sprintf("cannot find taxon ID %s (%s): %v",
		e.TaxID, e.ProjectCode, e.Err)
}

func (e *ResolutionFailedError) Unwrap() error {
	return e.Err
}

// Resolver applies taxon ID corrections before asking the backend.
type Resolver struct {
	backend Backend
	remap   map[string]string
	names   Canonicalizer
}

// Option configures a Resolver.
type Option func(*Resolver)

// OptNameFallback enables lookup by canonical organism name for unknown
// taxon IDs. It has an effect only if the backend implements NameBackend.
func OptNameFallback(c Canonicalizer) Option {
	return func(r *Resolver) {
		r.names = c
	}
}

// New creates a Resolver. The remap table translates stale taxon IDs to
// current ones.
func New(b Backend, remap map[string]string, opts ...Option) *Resolver {
	res := &Resolver{backend: b, remap: remap}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// CorrectTaxID returns the current taxon ID for a possibly stale one.
func (r *Resolver) CorrectTaxID(taxID string) string {
	taxID = strings.TrimSpace(taxID)
	if v, ok := r.remap[taxID]; ok {
		return v
	}
	return taxID
}

// Resolve finds the lineage of a project. The organism name is used only
// by the optional name fallback. For unknown taxon IDs it returns an
// empty Result together with a *ResolutionFailedError. Other backend
// errors are returned as is.
func (r *Resolver) Resolve(code, taxID, organism string) (Result, error) {
	res := Result{TaxID: r.CorrectTaxID(taxID)}

	names, err := r.backend.Lineage(res.TaxID)
	if errors.Is(err, ErrUnknownTaxID) {
		names, err = r.byName(organism, err)
		res.ByName = err == nil
	}
	if err != nil {
		if errors.Is(err, ErrUnknownTaxID) {
			return res, &ResolutionFailedError{
				TaxID:       res.TaxID,
				ProjectCode: code,
				Err:         err,
			}
		}
		return res, err
	}

	res.Names = make([]string, len(names))
	res.Set = make(map[string]struct{}, len(names))
	for i, v := range names {
		v = strings.ToLower(v)
		res.Names[i] = v
		res.Set[v] = struct{}{}
	}
	return res, nil
}

func (r *Resolver) byName(organism string, orig error) ([]string, error) {
	nb, ok := r.backend.(NameBackend)
	if r.names == nil || !ok {
		return nil, orig
	}
	can, ok := r.names.Canonical(organism)
	if !ok {
		return nil, orig
	}
	names, err := nb.LineageByName(can)
	if err != nil {
		return nil, orig
	}
	return names, nil
}
