// Package placement derives the directory that holds the files of an
// organism from its lineage.
//
// The layout is built from an ordered list of independent rules. Each
// rule checks the lineage and appends its segments to the path. Rules
// are not mutually exclusive: a lineage that satisfies several of them
// gets all their segments, in order.
package placement

import (
	"path"
	"strings"
)

// NoRank is the segment used where no named branch applies.
const NoRank = "no_rank"

// Lineage is a set of lower-cased taxon names.
type Lineage map[string]struct{}

func (l Lineage) has(name string) bool {
	_, ok := l[name]
	return ok
}

// Rule appends Segments to the path when Match is true for a lineage.
type Rule struct {
	Name     string
	Match    func(Lineage) bool
	Segments []string
}

func member(name string) func(Lineage) bool {
	return func(l Lineage) bool { return l.has(name) }
}

func all(fns ...func(Lineage) bool) func(Lineage) bool {
	return func(l Lineage) bool {
		for _, fn := range fns {
			if !fn(l) {
				return false
			}
		}
		return true
	}
}

func not(fn func(Lineage) bool) func(Lineage) bool {
	return func(l Lineage) bool { return !fn(l) }
}

var (
	dikarya     = member("dikarya")
	ascomycota  = all(dikarya, member("ascomycota"))
	basidio     = all(dikarya, not(member("ascomycota")), member("basidiomycota"))
	outsideDika = not(dikarya)
)

// Rules is the ordered rule list used by Path.
//
// Within Dikarya, Ascomycota takes precedence over Basidiomycota. Outside
// of Dikarya the Mucoromycota, Zoopagomycota and Chytridiomycota checks
// are independent of each other.
var Rules = []Rule{
	{Name: "dikarya", Match: dikarya, Segments: []string{"DIKARYA"}},
	{Name: "ascomycota", Match: ascomycota, Segments: []string{"ASCOMYCOTA"}},
	{
		Name:     "pezizomycotina",
		Match:    all(ascomycota, member("pezizomycotina")),
		Segments: []string{"PEZIZOMYCOTINA"},
	},
	{Name: "basidiomycota", Match: basidio, Segments: []string{"BASIDIOMYCOTA"}},
	{
		Name:     "agaricomycotina",
		Match:    all(basidio, member("agaricomycotina")),
		Segments: []string{"AGARICOMYCOTINA"},
	},
	{Name: "no_rank", Match: outsideDika, Segments: []string{NoRank}},
	{
		Name:     "mucoromycota",
		Match:    all(outsideDika, member("mucoromycota")),
		Segments: []string{"MUCOROMYCOTA"},
	},
	{
		Name:     "zoopagomycota",
		Match:    all(outsideDika, member("zoopagomycota")),
		Segments: []string{"ZOOPAGOMYCOTA"},
	},
	{
		Name:     "chytridiomycota",
		Match:    all(outsideDika, member("chytridiomycota")),
		Segments: []string{"CHYTRIDIOMYCOTA", NoRank},
	},
}

// Path returns a slash-separated relative directory for a lineage.
// After the rules are applied, the last segment is the upper-cased name
// of the only tree branch found in the lineage, or NoRank when there are
// zero or several of them.
func Path(lin Lineage, branches map[string]struct{}) string {
	var segs []string
	for _, r := range Rules {
		if r.Match(lin) {
			segs = append(segs, r.Segments...)
		}
	}
	segs = append(segs, lastSegment(lin, branches))
	return path.Join(segs...)
}

func lastSegment(lin Lineage, branches map[string]struct{}) string {
	var found []string
	for k := range branches {
		if lin.has(k) {
			found = append(found, k)
			if len(found) > 1 {
				return NoRank
			}
		}
	}
	if len(found) == 1 {
		return strings.ToUpper(found[0])
	}
	return NoRank
}
