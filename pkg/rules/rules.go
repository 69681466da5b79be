// Package rules holds curated tables that correct and filter MycoCosm
// metadata: taxon ID remapping, display name fixes, excluded projects,
// excluded assembly and annotation files, JGI tree branches and time zone
// offsets.
//
// The defaults are kept as data in the embedded rules.yaml. Users can
// provide their own copy in the configuration directory.
package rules

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var DefaultYAML []byte

var tzOffset = regexp.MustCompile(`^[+-]\d{4}$`)

// Rules contains all curation tables.
type Rules struct {
	// TaxIDRemap translates stale or merged NCBI taxon IDs to current ones.
	TaxIDRemap map[string]string `yaml:"taxid_remap"`

	// TreeBranches are lower-cased names of the main JGI fungal branches.
	TreeBranches []string `yaml:"tree_branches"`

	// ExcludedProjects are metaprojects or superseded portals.
	ExcludedProjects []string `yaml:"excluded_projects"`

	// DisplayNames overrides display names of some portals.
	DisplayNames map[string]string `yaml:"display_names"`

	// AssemblyMarkers are substrings of partial assembly files.
	AssemblyMarkers []string `yaml:"assembly_markers"`

	// ExcludedAssemblies are assembly filenames to ignore.
	ExcludedAssemblies []string `yaml:"excluded_assemblies"`

	// IgnoredGFF are gene model filenames to ignore.
	IgnoredGFF []string `yaml:"ignored_gff"`

	// GFFSkipKeywords are case-insensitive substrings of unwanted gene files.
	GFFSkipKeywords []string `yaml:"gff_skip_keywords"`

	// TimeZones maps US time zone abbreviations to UTC offsets (-0700).
	TimeZones map[string]string `yaml:"time_zones"`

	branches           map[string]struct{}
	excludedProjects   map[string]struct{}
	excludedAssemblies map[string]struct{}
	ignoredGFF         map[string]struct{}
}

// Default returns rules from the embedded rules.yaml.
func Default() *Rules {
	res, err := Parse(DefaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml is invalid: %s", err))
	}
	return res
}

// Parse decodes and validates rules from YAML data.
func Parse(data []byte) (*Rules, error) {
	var res Rules
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("cannot decode rules: %w", err)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	res.index()
	return &res, nil
}

// Validate checks the tables for values that would break resolution.
func (r *Rules) Validate() error {
	for k, v := range r.TimeZones {
		if !tzOffset.MatchString(v) {
			return fmt.Errorf("time zone %s has invalid offset %q", k, v)
		}
	}
	for k, v := range r.TaxIDRemap {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			return fmt.Errorf("taxid_remap has empty entry %q: %q", k, v)
		}
	}
	for _, v := range r.TreeBranches {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("tree_branches contains an empty name")
		}
	}
	return nil
}

func (r *Rules) index() {
	r.branches = make(map[string]struct{}, len(r.TreeBranches))
	for _, v := range r.TreeBranches {
		r.branches[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	r.excludedProjects = toSet(r.ExcludedProjects)
	r.excludedAssemblies = toSet(r.ExcludedAssemblies)
	r.ignoredGFF = toSet(r.IgnoredGFF)
}

func toSet(ss []string) map[string]struct{} {
	res := make(map[string]struct{}, len(ss))
	for _, v := range ss {
		res[v] = struct{}{}
	}
	return res
}

// DisplayName returns an override for a project display name.
func (r *Rules) DisplayName(code string) (string, bool) {
	v, ok := r.DisplayNames[code]
	return v, ok
}

// IsExcludedProject checks if a project must be removed from processing.
func (r *Rules) IsExcludedProject(code string) bool {
	_, ok := r.excludedProjects[code]
	return ok
}

// Branches returns the set of JGI tree branches.
func (r *Rules) Branches() map[string]struct{} {
	return r.branches
}

// IsExcludedAssembly checks assembly filenames against markers of
// partial assemblies and the list of excluded files.
func (r *Rules) IsExcludedAssembly(filename string) bool {
	for _, v := range r.AssemblyMarkers {
		if strings.Contains(filename, v) {
			return true
		}
	}
	_, ok := r.excludedAssemblies[filename]
	return ok
}

// IsIgnoredGFF checks if a gene models file is explicitly ignored.
func (r *Rules) IsIgnoredGFF(filename string) bool {
	_, ok := r.ignoredGFF[filename]
	return ok
}

// HasGFFSkipKeyword checks if a gene file is a protein, allele or
// promoter file rather than a gene models file.
func (r *Rules) HasGFFSkipKeyword(filename string) bool {
	lower := strings.ToLower(filename)
	for _, v := range r.GFFSkipKeywords {
		if strings.Contains(lower, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
