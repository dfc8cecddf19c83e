// Package report renders plain-text tables for CLI listings.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/typeracer/internal/model"
)

const (
	terminalWidthBackup = 80
	minTextWidth        = 16
)

// LevelSummary describes one level of a prompt bank.
type LevelSummary struct {
	Level   model.Level
	Prompts int
}

// TerminalWidth returns the width of the terminal behind f, or a fallback
// when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderLevels prints one row per level.
func RenderLevels(w io.Writer, levels []LevelSummary) error {
	if len(levels) == 0 {
		_, err := fmt.Fprintln(w, "No levels configured.")
		return err
	}
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, []string{l.Level.String(), l.Level.Label(), strconv.Itoa(l.Prompts)})
	}
	return writeLines(w, formatTable([]string{"Level", "Label", "Prompts"}, rows, map[int]bool{0: true, 2: true}))
}

// RenderPrompts prints stored prompts, truncating text to fit totalWidth.
// A non-positive totalWidth disables truncation.
func RenderPrompts(w io.Writer, prompts []model.StoredPrompt, totalWidth int) error {
	if len(prompts) == 0 {
		_, err := fmt.Fprintln(w, "No prompts found.")
		return err
	}
	headers := []string{"ID", "Level", "Added", "Text"}
	rows := make([][]string, 0, len(prompts))
	for _, p := range prompts {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Level.String(),
			p.CreatedAt.Local().Format("2006-01-02"),
			p.Text,
		})
	}
	if totalWidth > 0 {
		textWidth := totalWidth - prefixWidth(headers, rows)
		if textWidth < minTextWidth {
			textWidth = minTextWidth
		}
		for _, row := range rows {
			row[3] = runewidth.Truncate(row[3], textWidth, "…")
		}
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{0: true, 1: true}))
}

// prefixWidth is the width taken by every column before the last one,
// separators included.
func prefixWidth(headers []string, rows [][]string) int {
	total := 0
	for i := 0; i < len(headers)-1; i++ {
		width := runewidth.StringWidth(headers[i])
		for _, row := range rows {
			if w := runewidth.StringWidth(row[i]); w > width {
				width = w
			}
		}
		total += width + 1
	}
	return total
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
