// Package export writes a board as markdown: one section per lane, cards in
// display order.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"

	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/ordering"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Markdown renders cards as a markdown document. Lanes keep the order of
// lanes; empty lanes are listed with a placeholder line.
func Markdown(owner types.OwnerID, lanes models.LaneSet, cards []models.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Board: %s\n", owner)

	for _, lane := range lanes {
		column := ordering.SortColumn(cards, lane)
		fmt.Fprintf(&b, "\n## %s (%d)\n\n", models.Title(lane), len(column))
		if len(column) == 0 {
			b.WriteString("_No cards_\n")
			continue
		}
		for _, c := range column {
			fmt.Fprintf(&b, "%d. **%s**", c.Position+1, escape(c.Title))
			if c.FeatureID != "" {
				fmt.Fprintf(&b, " `%s`", c.FeatureID)
			}
			b.WriteString("\n")
			if desc := strings.TrimSpace(c.Description); desc != "" {
				for _, line := range strings.Split(desc, "\n") {
					fmt.Fprintf(&b, "   > %s\n", line)
				}
			}
		}
	}
	return b.String()
}

var markdownSpecial = strings.NewReplacer(`*`, `\*`, `_`, `\_`, "`", "\\`", `#`, `\#`)

func escape(s string) string {
	return markdownSpecial.Replace(s)
}

var (
	rendererCache sync.Map // map[int]*glamour.TermRenderer
)

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Render styles markdown for a terminal of the given width. On failure the
// raw markdown is returned along with the error.
func Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return markdown, fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown, fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write writes the board to w, styled when w is a terminal and raw is false
func Write(w io.Writer, owner types.OwnerID, lanes models.LaneSet, cards []models.Card, raw bool) error {
	doc := Markdown(owner, lanes, cards)
	if !raw && IsTerminal(w) {
		if rendered, err := Render(doc, 100); err == nil {
			doc = rendered
		}
	}
	_, err := io.WriteString(w, doc)
	return err
}
