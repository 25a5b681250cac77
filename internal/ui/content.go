package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glStyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/quikdocs/internal/catalog"
	"github.com/five82/quikdocs/internal/controller"
)

// document is the catalog rendered for one theme and wrap width. starts[i]
// and ends[i] are the first line of block i and the line after its last.
type document struct {
	lines  []string
	starts []int
	ends   []int
	width  int
	theme  string
}

func (d document) content() string {
	return strings.Join(d.lines, "\n")
}

// anchorLine returns the first line of the anchor's first block.
func (d document) anchorLine(cat *catalog.Catalog, id string) (int, bool) {
	a, ok := cat.Anchor(id)
	if !ok {
		return 0, false
	}
	return d.lineAt(a.Start), true
}

func (d document) lineAt(block int) int {
	if block < len(d.starts) {
		return d.starts[block]
	}
	return len(d.lines)
}

func markdownStyle(t Theme) glamouransi.StyleConfig {
	cfg := glStyles.LightStyleConfig
	if t.Glamour == "dark" {
		cfg = glStyles.DarkStyleConfig
	}
	var margin uint = 2
	bg := t.Background
	cfg.Document.Margin = &margin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.Document.BackgroundColor = &bg
	return cfg
}

// renderDocument renders every catalog block with glamour.
func renderDocument(cat *catalog.Catalog, t Theme, width int) (document, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle(t)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return document{}, fmt.Errorf("markdown renderer: %w", err)
	}
	return layoutBlocks(cat, t.Name, width, r.Render)
}

// plainDocument lays out the raw markdown when rendering fails.
func plainDocument(cat *catalog.Catalog, t Theme, width int) document {
	doc, _ := layoutBlocks(cat, t.Name, width, func(md string) (string, error) {
		return md, nil
	})
	return doc
}

func layoutBlocks(cat *catalog.Catalog, theme string, width int, render func(string) (string, error)) (document, error) {
	doc := document{width: width, theme: theme}
	for i, b := range cat.Blocks {
		out, err := render(b.Markdown)
		if err != nil {
			return document{}, fmt.Errorf("render block %d: %w", i, err)
		}
		lines := trimBlankLines(strings.Split(out, "\n"))
		if i > 0 && len(lines) > 0 {
			doc.lines = append(doc.lines, "")
			if b.Kind == catalog.KindHeading && b.Level <= 2 {
				doc.lines = append(doc.lines, "")
			}
		}
		doc.starts = append(doc.starts, len(doc.lines))
		doc.lines = append(doc.lines, lines...)
		doc.ends = append(doc.ends, len(doc.lines))
	}
	return doc, nil
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(ansi.Strip(lines[start])) == "" {
		start++
	}
	for end > start && strings.TrimSpace(ansi.Strip(lines[end-1])) == "" {
		end--
	}
	return lines[start:end]
}

// sectionsFor converts catalog anchors to controller sections in pixels.
func sectionsFor(cat *catalog.Catalog, doc document, cellHeight int) []controller.Section {
	sections := make([]controller.Section, 0, len(cat.Anchors))
	for _, a := range cat.Anchors {
		top := doc.lineAt(a.Start)
		bottom := top
		if a.End > a.Start && a.End-1 < len(doc.ends) {
			bottom = doc.ends[a.End-1]
		}
		sections = append(sections, controller.Section{
			ID:     a.ID,
			Top:    top * cellHeight,
			Bottom: bottom * cellHeight,
		})
	}
	return sections
}

// rowsForPixels converts a pixel offset to the nearest row.
func rowsForPixels(px, cellHeight int) int {
	if cellHeight <= 0 || px <= 0 {
		return 0
	}
	return (px + cellHeight/2) / cellHeight
}
