package catalog

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// inlineTags may appear inside a leaf element without making it a container.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "code": true, "em": true,
	"i": true, "input": true, "kbd": true, "label": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "textarea": true,
}

// skipped elements contribute nothing to the document.
var skipped = map[string]bool{
	"script": true, "style": true, "svg": true, "noscript": true, "template": true,
}

// leaf is a single line of inline content. code is set when the element holds
// nothing but one code span.
type leaf struct {
	line string
	code string
}

// builder turns an HTML subtree into blocks. Consecutive leaf siblings are
// coalesced into one list block.
type builder struct {
	blocks  []Block
	anchors []Anchor
}

func (b *builder) container(s *goquery.Selection) {
	var run []leaf
	s.Children().Each(func(_ int, child *goquery.Selection) {
		if _, hasID := child.Attr("id"); !hasID {
			if l, ok := leafOf(child); ok {
				run = append(run, l)
				return
			}
		}
		b.flush(run)
		run = nil
		b.element(child)
	})
	b.flush(run)
}

func (b *builder) element(s *goquery.Selection) {
	name := goquery.NodeName(s)
	if skipped[name] {
		return
	}

	anchor := -1
	if id, ok := s.Attr("id"); ok && strings.TrimSpace(id) != "" {
		anchor = len(b.anchors)
		b.anchors = append(b.anchors, Anchor{ID: strings.TrimSpace(id), Start: len(b.blocks)})
	}

	switch {
	case headingLevel(name) > 0:
		b.heading(s, headingLevel(name))
	case name == "table":
		b.table(s)
	case name == "pre":
		b.code(strings.Trim(s.Text(), "\n"))
	default:
		if l, ok := leafOf(s); ok {
			b.flush([]leaf{l})
		} else {
			b.container(s)
		}
	}

	if anchor >= 0 {
		b.anchors[anchor].End = len(b.blocks)
	}
}

func (b *builder) flush(run []leaf) {
	switch len(run) {
	case 0:
		return
	case 1:
		if run[0].code != "" {
			b.code(run[0].code)
			return
		}
		b.blocks = append(b.blocks, Block{Kind: KindParagraph, Markdown: run[0].line})
	default:
		lines := make([]string, len(run))
		for i, l := range run {
			lines[i] = "- " + l.line
		}
		b.blocks = append(b.blocks, Block{Kind: KindList, Markdown: strings.Join(lines, "\n")})
	}
}

func (b *builder) heading(s *goquery.Selection, level int) {
	text := collapse(inlineText(s))
	if text == "" {
		return
	}
	b.blocks = append(b.blocks, Block{
		Kind:     KindHeading,
		Level:    level,
		Text:     text,
		Markdown: strings.Repeat("#", level) + " " + text,
	})
}

func (b *builder) code(body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	b.blocks = append(b.blocks, Block{Kind: KindCode, Markdown: "```\n" + body + "\n```"})
}

func (b *builder) table(s *goquery.Selection) {
	var header []string
	s.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, cell(th))
	})

	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Children().Filter("td")
		if tds.Length() == 0 {
			if len(header) == 0 {
				tr.Children().Filter("th").Each(func(_ int, th *goquery.Selection) {
					header = append(header, cell(th))
				})
			}
			return
		}
		var row []string
		tds.Each(func(_ int, td *goquery.Selection) {
			row = append(row, cell(td))
		})
		rows = append(rows, row)
	})

	width := len(header)
	for _, r := range rows {
		width = max(width, len(r))
	}
	if width == 0 {
		return
	}
	for len(header) < width {
		header = append(header, "")
	}

	var sb strings.Builder
	writeRow(&sb, header, width)
	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&sb, sep, width)
	for _, r := range rows {
		writeRow(&sb, r, width)
	}
	b.blocks = append(b.blocks, Block{Kind: KindTable, Markdown: strings.TrimSuffix(sb.String(), "\n")})
}

func writeRow(sb *strings.Builder, cells []string, width int) {
	sb.WriteString("|")
	for i := 0; i < width; i++ {
		c := ""
		if i < len(cells) {
			c = cells[i]
		}
		sb.WriteString(" " + c + " |")
	}
	sb.WriteString("\n")
}

func cell(s *goquery.Selection) string {
	return strings.ReplaceAll(collapse(inlineText(s)), "|", `\|`)
}

// leafOf reports whether s renders as a single line and returns that line.
func leafOf(s *goquery.Selection) (leaf, bool) {
	name := goquery.NodeName(s)
	if skipped[name] || headingLevel(name) > 0 {
		return leaf{}, false
	}
	switch name {
	case "table", "pre", "ul", "ol", "section", "form", "main", "article", "nav":
		return leaf{}, false
	}
	if !allInline(s) {
		return leaf{}, false
	}

	line := collapse(inlineText(s))
	switch name {
	case "button":
		if line == "" {
			return leaf{}, false
		}
		line = "[ " + line + " ]"
		if _, disabled := s.Attr("disabled"); disabled {
			line += " (disabled)"
		}
	case "input", "textarea":
		line = fieldText(s)
	}
	if line == "" {
		return leaf{}, false
	}

	l := leaf{line: line}
	if kids := s.Children(); kids.Length() == 1 && goquery.NodeName(kids) == "code" {
		if collapse(s.Text()) == collapse(kids.Text()) {
			l.code = strings.TrimSpace(kids.Text())
		}
	}
	return l, true
}

func allInline(s *goquery.Selection) bool {
	ok := true
	s.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		name := goquery.NodeName(c)
		if !inlineTags[name] || !allInline(c) {
			ok = false
		}
		return ok
	})
	return ok
}

func inlineText(s *goquery.Selection) string {
	var sb strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			sb.WriteString(c.Text())
		case "#comment":
		case "code", "kbd":
			if text := collapse(c.Text()); text != "" {
				sb.WriteString("`" + text + "`")
			}
		case "strong", "b":
			if text := collapse(inlineText(c)); text != "" {
				sb.WriteString("**" + text + "**")
			}
		case "em", "i":
			if text := collapse(inlineText(c)); text != "" {
				sb.WriteString("_" + text + "_")
			}
		case "br":
			sb.WriteString(" ")
		case "input", "textarea":
			sb.WriteString(" " + fieldText(c) + " ")
		default:
			if !skipped[goquery.NodeName(c)] {
				sb.WriteString(inlineText(c))
			}
		}
	})
	return sb.String()
}

func fieldText(s *goquery.Selection) string {
	placeholder, _ := s.Attr("placeholder")
	placeholder = collapse(placeholder)
	if placeholder == "" {
		return "`____`"
	}
	return "`" + placeholder + "`"
}

func headingLevel(name string) int {
	if len(name) != 2 || name[0] != 'h' {
		return 0
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}
