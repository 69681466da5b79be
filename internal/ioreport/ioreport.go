// Package ioreport writes human-readable results of file selection and
// download runs.
package ioreport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnmyco/pkg/listing"
	"github.com/gnames/gnmyco/pkg/plan"
	"github.com/gnames/gnmyco/pkg/project"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// GeneModelsFile is the name of the gene models candidates report.
const GeneModelsFile = "List_gene_gff_filenames.txt"

// WriteGeneModels writes the gene models report into dir.
func WriteGeneModels(
	dir string,
	cat *project.Catalog,
	d *listing.Diagnostics,
) (string, error) {
	path := filepath.Join(dir, GeneModelsFile)
	f, err := os.Create(path)
	if err != nil {
		return path, ReportError(path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err = GeneModels(w, cat, d); err != nil {
		return path, ReportError(path, err)
	}
	if err = w.Flush(); err != nil {
		return path, ReportError(path, err)
	}
	return path, nil
}

// GeneModels lists every gene models candidate by project. Each project
// starts with its code and display name followed by the placement path.
// Candidates are given with their date. Rejected files are marked as
// "(SKIPPED)", the selected one gets a trailing "*".
func GeneModels(w io.Writer, cat *project.Catalog, d *listing.Diagnostics) error {
	pcs := slices.Clone(d.Projects)
	slices.SortFunc(pcs, func(a, b *listing.ProjectCandidates) int {
		return strings.Compare(a.Code, b.Code)
	})

	for _, pc := range pcs {
		var name, path string
		if p, ok := cat.Get(pc.Code); ok {
			name, path = p.DisplayName, p.PlacementPath
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n\t%s\n", pc.Code, name, path); err != nil {
			return err
		}

		for _, c := range pc.Candidates {
			date := "----------"
			if !c.Timestamp.IsZero() {
				date = c.Timestamp.Format("2006-01-02")
			}
			line := "\t" + date + "\t" + c.Filename
			if c.Skipped {
				line += " (SKIPPED)"
			}
			if c.Selected {
				line += " *"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// MissingAnnotations formats codes of projects without gene models.
func MissingAnnotations(codes []string) string {
	if len(codes) == 0 {
		return ""
	}
	return "Missing gffs from: " + strings.Join(codes, ", ")
}

// Warnings renders a table with the number of resolution warnings
// of every kind.
func Warnings(d *listing.Diagnostics) string {
	counts := make(map[listing.WarningKind]int)
	for _, v := range d.Warnings {
		counts[v.Kind]++
	}
	if len(counts) == 0 {
		return ""
	}

	kinds := make([]listing.WarningKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	rows := make([][]string, len(kinds))
	for i, k := range kinds {
		rows[i] = []string{k.String(), humanize.Comma(int64(counts[k]))}
	}
	return renderTable([]string{"Warning", "Count"}, rows)
}

// Summary renders the final counts of a download run.
func Summary(c plan.Counters) string {
	rows := [][]string{
		{"Portals", strconv.Itoa(c.Projects)},
		{"Files needed", strconv.Itoa(c.Needed)},
		{"Copied", strconv.Itoa(c.Copied)},
		{"Downloaded", strconv.Itoa(c.Downloaded)},
		{"Pre-existing", strconv.Itoa(c.PreExisting)},
		{"In previous", strconv.Itoa(c.InPrior)},
		{"Failed", strconv.Itoa(c.Failed)},
		{"Missing selections", strconv.Itoa(c.Missing)},
	}
	return renderTable([]string{"Files", "Count"}, rows)
}

// renderTable draws rows with the first column left-aligned and the
// rest right-aligned.
func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, v := range headers {
		header[i] = v
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, len(headers))
	for i := range headers {
		align := text.AlignRight
		if i == 0 {
			align = text.AlignLeft
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
