// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeracer/internal/model"
)

type styledWord struct {
	s     string
	width int
}

func styleFor(status model.Correctness) lipgloss.Style {
	switch status {
	case model.Correct:
		return correctStyle
	case model.Incorrect:
		return incorrectStyle
	default:
		return pendingStyle
	}
}

func buildStyledWords(tokens []model.Token) []styledWord {
	out := make([]styledWord, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, styledWord{
			s:     styleFor(tok.Status).Render(tok.Word),
			width: runewidth.StringWidth(tok.Word),
		})
	}
	return out
}

func plainWords(text string) []styledWord {
	fields := strings.Fields(text)
	out := make([]styledWord, 0, len(fields))
	for _, f := range fields {
		out = append(out, styledWord{
			s:     plainStyle.Render(f),
			width: runewidth.StringWidth(f),
		})
	}
	return out
}

// wrapStyledWords breaks words into lines no wider than width. A word wider
// than width gets a line of its own.
func wrapStyledWords(words []styledWord, width int) string {
	var out strings.Builder
	lineWidth := 0
	for i, w := range words {
		switch {
		case i == 0:
		case width > 0 && lineWidth+1+w.width > width:
			out.WriteRune('\n')
			lineWidth = 0
		default:
			out.WriteRune(' ')
			lineWidth++
		}
		out.WriteString(w.s)
		lineWidth += w.width
	}
	return out.String()
}
