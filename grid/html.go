package grid

import (
	"embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/knix24/sleeper-pixel-performance/model"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

// GitHub contribution graph colors.
var tierHTMLColors = map[model.Tier]string{
	model.TIER_ELITE:   "#216e39",
	model.TIER_GREAT:   "#30a14e",
	model.TIER_GOOD:    "#9be9a8",
	model.TIER_AVERAGE: "#ebedf0",
}

// Cell sizes in px, bigger is better.
var tierHTMLSizes = map[model.Tier]int{
	model.TIER_ELITE:   16,
	model.TIER_GREAT:   14,
	model.TIER_GOOD:    12,
	model.TIER_AVERAGE: 10,
}

const (
	noDataHTMLColor = "#f6f8fa"
	noDataHTMLSize  = 10
)

var htmlRender = sync.OnceValue(func() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
	})
})

type htmlPage struct {
	Title  string
	Grids  []htmlGrid
	Legend []htmlLegendItem
}

type htmlGrid struct {
	Heading string
	Weeks   []int
	Columns int
	Rows    []htmlRow
}

type htmlRow struct {
	// Spacer is set on the first row of each position group after the first.
	Spacer   bool
	Position model.Position
	Name     string
	Cells    []htmlCell
}

type htmlCell struct {
	// Empty cells are weeks the player wasn't on the roster.
	Empty   bool
	Color   string
	Size    int
	Tooltip string
}

type htmlLegendItem struct {
	Color string
	Label string
}

// WriteHTML writes a standalone HTML page with the grid for a single team.
func WriteHTML(w io.Writer, r *model.Report, opts Options) error {
	rows := PrepareRows(r.Results, opts.Positions, r.RosterWeeks, r.MaxWeek)
	page := &htmlPage{
		Title:  fmt.Sprintf("%s - %s Season Performance", r.TeamName, r.Season),
		Grids:  []htmlGrid{newHTMLGrid("", rows, r.MaxWeek)},
		Legend: htmlLegend(),
	}
	return writePage(w, page)
}

// WriteCompareHTML writes a standalone HTML page with a grid for every team.
func WriteCompareHTML(w io.Writer, cr *model.CompareReport, opts Options) error {
	page := &htmlPage{
		Title:  fmt.Sprintf("%s - %s Season Comparison", cr.LeagueName, cr.Season),
		Grids:  make([]htmlGrid, 0, len(cr.Teams)),
		Legend: htmlLegend(),
	}
	for _, team := range cr.Teams {
		rows := PrepareRows(team.Results, opts.Positions, team.RosterWeeks, cr.MaxWeek)
		page.Grids = append(page.Grids, newHTMLGrid(team.TeamName, rows, cr.MaxWeek))
	}
	return writePage(w, page)
}

func ExportHTML(path string, r *model.Report, opts Options) error {
	return exportFile(path, func(w io.Writer) error {
		return WriteHTML(w, r, opts)
	})
}

func ExportCompareHTML(path string, cr *model.CompareReport, opts Options) error {
	return exportFile(path, func(w io.Writer) error {
		return WriteCompareHTML(w, cr, opts)
	})
}

func exportFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}

func writePage(w io.Writer, page *htmlPage) error {
	if err := htmlRender().HTML(w, http.StatusOK, "grid", page); err != nil {
		return fmt.Errorf("error rendering html grid: %w", err)
	}
	return nil
}

func newHTMLGrid(heading string, rows []Row, maxWeek int) htmlGrid {
	g := htmlGrid{
		Heading: heading,
		Weeks:   make([]int, maxWeek),
		Columns: maxWeek + 1,
		Rows:    make([]htmlRow, 0, len(rows)),
	}
	for i := range g.Weeks {
		g.Weeks[i] = i + 1
	}

	for i, row := range rows {
		hr := htmlRow{
			Spacer:   i > 0 && rows[i-1].Position != row.Position,
			Position: row.Position,
			Name:     row.Name,
			Cells:    make([]htmlCell, 0, len(row.Cells)),
		}
		for _, c := range row.Cells {
			hr.Cells = append(hr.Cells, newHTMLCell(c))
		}
		g.Rows = append(g.Rows, hr)
	}
	return g
}

func newHTMLCell(c Cell) htmlCell {
	switch c.State {
	case CELL_SCORED:
		r := c.Result
		return htmlCell{
			Color:   tierHTMLColors[r.Tier],
			Size:    tierHTMLSizes[r.Tier],
			Tooltip: fmt.Sprintf("Week %d: %.1f pts (#%d %s)", c.Week, r.Points, r.Rank, r.Position),
		}
	case CELL_NO_DATA:
		return htmlCell{Color: noDataHTMLColor, Size: noDataHTMLSize}
	default:
		return htmlCell{Empty: true}
	}
}

func htmlLegend() []htmlLegendItem {
	items := make([]htmlLegendItem, 0, len(model.Tiers)+1)
	for _, t := range model.Tiers {
		items = append(items, htmlLegendItem{Color: tierHTMLColors[t], Label: t.Label()})
	}
	return append(items, htmlLegendItem{Color: noDataHTMLColor, Label: "No data"})
}
