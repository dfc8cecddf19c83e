package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Level", "Label", "Prompts"}
	rows := [][]string{
		{"1", "easy", "3"},
		{"12", "level 12", "10"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 2: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Level Label    Prompts" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "    1 easy           3" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "   12 level 12      10" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderLevels(t *testing.T) {
	var buf bytes.Buffer
	err := RenderLevels(&buf, []LevelSummary{{Level: model.LevelEasy, Prompts: 3}, {Level: model.LevelHard, Prompts: 4}})
	if err != nil {
		t.Fatalf("render levels: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Level", "easy", "hard", "4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderPromptsTruncates(t *testing.T) {
	var buf bytes.Buffer
	prompts := []model.StoredPrompt{{
		ID:        7,
		Level:     model.LevelMedium,
		Text:      strings.Repeat("long words ", 20),
		CreatedAt: time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local),
	}}
	if err := RenderPrompts(&buf, prompts, 60); err != nil {
		t.Fatalf("render prompts: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "2026-01-02") || !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if w := len([]rune(lines[1])); w > 60 {
		t.Fatalf("row wider than terminal: %d", w)
	}
}

func TestRenderPromptsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPrompts(&buf, nil, 0); err != nil {
		t.Fatalf("render prompts: %v", err)
	}
	if buf.String() != "No prompts found.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
