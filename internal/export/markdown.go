// Package export writes the rows a tree view currently shows
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/projection"
)

// Rows is the part of a tree view the exporter reads
type Rows interface {
	RowCount() int
	NodeAt(row int) (model.Node, error)
	Level(row int) (int, error)
}

// ExportToMarkdown exports the visible rows to a markdown file as an
// unordered list. Collapsed containers export without their children.
func ExportToMarkdown(rows Rows, filePath string) error {
	var sb strings.Builder
	if err := WriteMarkdown(&sb, rows); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}
	return nil
}

// WriteMarkdown writes one bullet per row, indented 2 spaces per level.
// Pages become links and separators become a bare "---" bullet.
func WriteMarkdown(w io.Writer, rows Rows) error {
	for row := 0; row < rows.RowCount(); row++ {
		node, err := rows.NodeAt(row)
		if err != nil {
			return err
		}
		level, err := rows.Level(row)
		if err != nil {
			return err
		}
		if level < 0 {
			level = 0
		}
		if _, err := fmt.Fprintf(w, "%s- %s\n", strings.Repeat("  ", level), bullet(node)); err != nil {
			return fmt.Errorf("failed to write markdown: %w", err)
		}
	}
	return nil
}

func bullet(n model.Node) string {
	switch {
	case n.Kind() == model.KindSeparator:
		return "---"
	case n.IsContainer() || n.URI() == "":
		return escape(projection.BestTitle(n))
	}
	return fmt.Sprintf("[%s](%s)", escape(projection.BestTitle(n)), n.URI())
}

var escaper = strings.NewReplacer(`[`, `\[`, `]`, `\]`, "\n", " ")

func escape(s string) string {
	return escaper.Replace(s)
}
