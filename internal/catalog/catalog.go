package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

//go:embed quik.html
var embedded []byte

// ErrNoContent is returned when the document has no <main> element.
var ErrNoContent = errors.New("catalog has no <main> element")

// BlockKind classifies a rendered block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindHeading
	KindList
	KindCode
	KindTable
)

func (k BlockKind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindCode:
		return "code"
	case KindTable:
		return "table"
	default:
		return "paragraph"
	}
}

// Block is one markdown fragment of the document body.
type Block struct {
	Kind     BlockKind
	Level    int    // heading level, 0 for other kinds
	Text     string // plain heading text
	Markdown string
}

// Anchor is an element id and the half-open block range [Start, End) it covers.
type Anchor struct {
	ID    string
	Start int
	End   int
}

// Link is a labelled hyperlink from the header or footer.
type Link struct {
	Label string
	Href  string
}

// NavItem is one sidebar entry. Target is the anchor id without the '#'.
type NavItem struct {
	Label  string
	Target string
}

// NavGroup is a titled run of sidebar entries.
type NavGroup struct {
	Title string
	Items []NavItem
}

// Footer holds the page footer.
type Footer struct {
	Text  string
	Links []Link
}

// Catalog is the parsed documentation page.
type Catalog struct {
	Title       string
	HeaderLinks []Link
	Nav         []NavGroup
	Blocks      []Block
	Anchors     []Anchor
	Footer      Footer
}

// Default parses the embedded Quik CSS catalog.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(embedded))
}

// Load parses the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads an HTML document into a Catalog.
func Parse(r io.Reader) (*Catalog, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	body := doc.Find("main").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("parse catalog: %w", ErrNoContent)
	}

	c := &Catalog{
		Title:       collapse(doc.Find("header .brand").First().Text()),
		HeaderLinks: links(doc.Find("header nav a")),
		Nav:         parseNav(doc.Find("aside nav li")),
		Footer: Footer{
			Text:  collapse(doc.Find("footer p").Text()),
			Links: links(doc.Find("footer a")),
		},
	}
	if c.Title == "" {
		c.Title = collapse(doc.Find("title").First().Text())
	}

	b := &builder{}
	b.container(body)
	c.Blocks = b.blocks
	c.Anchors = b.anchors
	return c, nil
}

// Anchor returns the anchor with the given id.
func (c *Catalog) Anchor(id string) (Anchor, bool) {
	for _, a := range c.Anchors {
		if a.ID == id {
			return a, true
		}
	}
	return Anchor{}, false
}

// DanglingTargets lists sidebar targets with no matching anchor, in sidebar
// order.
func (c *Catalog) DanglingTargets() []string {
	var out []string
	seen := make(map[string]bool)
	for _, g := range c.Nav {
		for _, item := range g.Items {
			if item.Target == "" || seen[item.Target] {
				continue
			}
			seen[item.Target] = true
			if _, ok := c.Anchor(item.Target); !ok {
				out = append(out, item.Target)
			}
		}
	}
	return out
}

// Label returns a display name for an anchor: its sidebar label, else the
// first heading inside it, else the id itself.
func (c *Catalog) Label(id string) string {
	for _, g := range c.Nav {
		for _, item := range g.Items {
			if item.Target == id && item.Label != "" {
				return item.Label
			}
		}
	}
	if a, ok := c.Anchor(id); ok {
		for i := a.Start; i < a.End && i < len(c.Blocks); i++ {
			if c.Blocks[i].Kind == KindHeading {
				return c.Blocks[i].Text
			}
		}
	}
	return id
}

// Markdown joins every block into one document.
func (c *Catalog) Markdown() string {
	parts := make([]string, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		parts = append(parts, b.Markdown)
	}
	return strings.Join(parts, "\n\n")
}

func parseNav(items *goquery.Selection) []NavGroup {
	var groups []NavGroup
	items.Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			title := collapse(li.Text())
			if title != "" {
				groups = append(groups, NavGroup{Title: title})
			}
			return
		}
		if len(groups) == 0 {
			groups = append(groups, NavGroup{})
		}
		href, _ := a.Attr("href")
		last := &groups[len(groups)-1]
		last.Items = append(last.Items, NavItem{
			Label:  collapse(a.Text()),
			Target: strings.TrimPrefix(strings.TrimSpace(href), "#"),
		})
	})
	return groups
}

func links(sel *goquery.Selection) []Link {
	var out []Link
	sel.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		label := collapse(a.Text())
		if label == "" {
			return
		}
		out = append(out, Link{Label: label, Href: strings.TrimSpace(href)})
	})
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
