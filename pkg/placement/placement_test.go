package placement_test

import (
	"testing"

	"github.com/gnames/gnmyco/pkg/placement"
	"github.com/gnames/gnmyco/pkg/rules"
	"github.com/stretchr/testify/assert"
)

func lineage(names ...string) placement.Lineage {
	res := make(placement.Lineage, len(names))
	for _, v := range names {
		res[v] = struct{}{}
	}
	return res
}

func TestPath(t *testing.T) {
	branches := rules.Default().Branches()

	tests := []struct {
		msg string
		lin placement.Lineage
		res string
	}{
		{
			msg: "pezizomycotina",
			lin: lineage("fungi", "dikarya", "ascomycota", "pezizomycotina",
				"eurotiomycetes"),
			res: "DIKARYA/ASCOMYCOTA/PEZIZOMYCOTINA/EUROTIOMYCETES",
		},
		{
			msg: "saccharomycotina",
			lin: lineage("fungi", "dikarya", "ascomycota", "saccharomycotina"),
			res: "DIKARYA/ASCOMYCOTA/SACCHAROMYCOTINA",
		},
		{
			msg: "agaricomycotina",
			lin: lineage("fungi", "dikarya", "basidiomycota", "agaricomycotina",
				"agaricomycetes"),
			res: "DIKARYA/BASIDIOMYCOTA/AGARICOMYCOTINA/AGARICOMYCETES",
		},
		{
			msg: "dikarya without phylum",
			lin: lineage("fungi", "dikarya"),
			res: "DIKARYA/no_rank",
		},
		{
			msg: "mucoromycota",
			lin: lineage("fungi", "mucoromycota", "mucoromycotina"),
			res: "no_rank/MUCOROMYCOTA/MUCOROMYCOTINA",
		},
		{
			msg: "chytridiomycota",
			lin: lineage("fungi", "chytridiomycota", "chytridiomycetes"),
			res: "no_rank/CHYTRIDIOMYCOTA/no_rank/CHYTRIDIOMYCETES",
		},
		{
			msg: "independent rules add several segments",
			lin: lineage("mucoromycota", "zoopagomycota"),
			res: "no_rank/MUCOROMYCOTA/ZOOPAGOMYCOTA/no_rank",
		},
		{
			msg: "two branches",
			lin: lineage("dikarya", "ascomycota", "sordariomycetes",
				"leotiomycetes"),
			res: "DIKARYA/ASCOMYCOTA/no_rank",
		},
		{
			msg: "empty lineage",
			lin: lineage(),
			res: "no_rank/no_rank",
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, placement.Path(v.lin, branches), v.msg)
	}
}

func TestPathDeterministic(t *testing.T) {
	branches := rules.Default().Branches()
	lin := lineage("fungi", "dikarya", "ascomycota", "pezizomycotina",
		"sordariomycetes")
	res := placement.Path(lin, branches)
	for range 20 {
		assert.Equal(t, res, placement.Path(lin, branches))
	}
}
