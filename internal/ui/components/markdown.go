package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/abhisek/grimoire/internal/ui/theme"
)

var mdParser = goldmark.DefaultParser()

// RenderMarkdown parses lesson markdown as CommonMark and renders it with
// the theme's markdown styles, wrapped to width.
func RenderMarkdown(src string, width int) string {
	source := []byte(strings.ReplaceAll(src, "\r\n", "\n"))
	doc := mdParser.Parse(text.NewReader(source))

	r := mdRenderer{source: source}
	return strings.Join(r.blocks(doc, max(width, 10)), "\n\n")
}

type mdRenderer struct {
	source []byte
}

// blocks renders each non-empty block child of n.
func (r mdRenderer) blocks(n ast.Node, width int) []string {
	var out []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c, width); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r mdRenderer) block(n ast.Node, width int) string {
	switch n := n.(type) {
	case *ast.Heading:
		return theme.MDHeading.Width(width).Render(strings.ToUpper(r.plain(n)))

	case *ast.Paragraph, *ast.TextBlock:
		return lipgloss.NewStyle().Width(width).Render(r.inline(n))

	case *ast.List:
		return r.list(n, width)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.code(n)

	case *ast.Blockquote:
		bar := theme.MDBullet.Render("│ ")
		body := strings.Join(r.blocks(n, width-2), "\n")
		lines := strings.Split(body, "\n")
		for i := range lines {
			lines[i] = bar + lines[i]
		}
		return strings.Join(lines, "\n")

	case *ast.ThematicBreak:
		return theme.MDBullet.Render(strings.Repeat("─", width))

	case *ast.HTMLBlock:
		return r.lines(n)

	default:
		return strings.Join(r.blocks(n, width), "\n")
	}
}

func (r mdRenderer) list(l *ast.List, width int) string {
	sep := "\n"
	if !l.IsTight {
		sep = "\n\n"
	}

	var items []string
	num := l.Start
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := theme.MDBullet.Render("  • ")
		if l.IsOrdered() {
			marker = theme.MDBullet.Render(fmt.Sprintf("  %d%c ", num, l.Marker))
			num++
		}
		body := strings.Join(r.blocks(c, max(width-lipgloss.Width(marker), 4)), sep)
		items = append(items, hang(marker, body))
	}
	return strings.Join(items, sep)
}

func (r mdRenderer) code(n ast.Node) string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		out = append(out, theme.MDCode.Render("  "+line))
	}
	return strings.Join(out, "\n")
}

func (r mdRenderer) lines(n ast.Node) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.source))
	}
	return strings.TrimRight(b.String(), "\n")
}

// inline renders the inline children of n with emphasis, code spans and
// links styled.
func (r mdRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
			switch {
			case c.HardLineBreak():
				b.WriteString("\n")
			case c.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.CodeSpan:
			b.WriteString(theme.MDCode.Render(r.plain(c)))
		case *ast.Emphasis:
			if c.Level >= 2 {
				b.WriteString(theme.MDBold.Render(r.inline(c)))
			} else {
				b.WriteString(theme.MDItalic.Render(r.inline(c)))
			}
		case *ast.Link:
			b.WriteString(r.inline(c))
			if dest := string(c.Destination); dest != "" && dest != r.plain(c) {
				b.WriteString(theme.MDBullet.Render(" (" + dest + ")"))
			}
		case *ast.AutoLink:
			b.Write(c.URL(r.source))
		case *ast.Image:
			b.WriteString(r.plain(c))
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				b.Write(seg.Value(r.source))
			}
		default:
			b.WriteString(r.inline(c))
		}
	}
	return b.String()
}

// plain returns the unstyled text of n's inline children.
func (r mdRenderer) plain(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// hang places marker before the first line of body and indents the rest.
func hang(marker, body string) string {
	pad := strings.Repeat(" ", lipgloss.Width(marker))
	lines := strings.Split(body, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = marker + lines[i]
		} else if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
