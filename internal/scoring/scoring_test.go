package scoring

import (
	"reflect"
	"strings"
	"testing"

	"github.com/verte-zerg/typeracer/internal/model"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Don't  Panic!", []string{"don't", "panic"}},
		{"  The sun is bright today.  ", []string{"the", "sun", "is", "bright", "today"}},
		{"Meet at 7:45—don't be late!", []string{"meet", "at", "745don't", "be", "late"}},
		{"a - b", []string{"a", "b"}},
		{"", []string{}},
		{"\t\n", []string{}},
	}
	for _, tc := range cases {
		got := Normalize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeAlignedKeepsPositions(t *testing.T) {
	text := "wait - what ?! ok"
	got := NormalizeAligned(text)
	if len(got) != len(strings.Fields(text)) {
		t.Fatalf("expected %d tokens, got %d", len(strings.Fields(text)), len(got))
	}
	want := []string{"wait", "-", "what", "?!", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeAligned(%q) = %q, want %q", text, got, want)
	}
}

func TestCountCorrectWords(t *testing.T) {
	cases := []struct {
		prompt string
		typed  string
		want   int
	}{
		{"The sun is bright", "the sun is dim", 3},
		{"The sun is bright", "", 0},
		{"The sun", "the sun is bright and warm", 2},
		{"The sun is bright", "sun is bright", 0},
		{"I like to cook pasta.", "i LIKE to cook pasta", 5},
		{"a - b", "a b", 2},
	}
	for _, tc := range cases {
		if got := CountCorrectWords(tc.prompt, tc.typed); got != tc.want {
			t.Fatalf("CountCorrectWords(%q, %q) = %d, want %d", tc.prompt, tc.typed, got, tc.want)
		}
	}
}

func TestComputeWPM(t *testing.T) {
	cases := []struct {
		correct int
		elapsed float64
		want    int
	}{
		{10, 30, 20},
		{5, 0, 0},
		{5, -1, 0},
		{0, 12, 0},
		{7, 60, 7},
		{1, 7, 9},
		{3, 4, 45},
	}
	for _, tc := range cases {
		if got := ComputeWPM(tc.correct, tc.elapsed); got != tc.want {
			t.Fatalf("ComputeWPM(%d, %v) = %d, want %d", tc.correct, tc.elapsed, got, tc.want)
		}
	}
}

func TestHighlightPartialInput(t *testing.T) {
	tokens := Highlight("The sun is bright today.", "the sun iz")
	want := []model.Token{
		{Word: "The", Status: model.Correct},
		{Word: "sun", Status: model.Correct},
		{Word: "is", Status: model.Incorrect},
		{Word: "bright", Status: model.Unscored},
		{Word: "today.", Status: model.Unscored},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("unexpected tokens: %+v", tokens)
	}
	if got := JoinTokens(tokens); got != "The sun is bright today." {
		t.Fatalf("unexpected joined text %q", got)
	}
}

func TestHighlightPunctuationWordKeepsAlignment(t *testing.T) {
	tokens := Highlight("wait - what now", "wait - what now")
	for i, tok := range tokens {
		if tok.Status != model.Correct {
			t.Fatalf("token %d (%q) expected correct, got %s", i, tok.Word, tok.Status)
		}
	}

	tokens = Highlight("wait - what now", "wait what now")
	if tokens[0].Status != model.Correct {
		t.Fatalf("expected first word correct")
	}
	if tokens[1].Status != model.Incorrect || tokens[2].Status != model.Incorrect {
		t.Fatalf("expected shifted words to be incorrect: %+v", tokens)
	}
	if tokens[3].Status != model.Unscored {
		t.Fatalf("expected last word unscored: %+v", tokens)
	}
}

func TestHighlightCollapsesWhitespace(t *testing.T) {
	tokens := Highlight("  one   two\tthree ", "")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if got := JoinTokens(tokens); got != "one two three" {
		t.Fatalf("unexpected joined text %q", got)
	}
	for _, tok := range tokens {
		if tok.Status != model.Unscored {
			t.Fatalf("expected unscored tokens without input")
		}
	}
}

func TestScore(t *testing.T) {
	res := Score("The sun is bright", "the sun is dim", 6)
	if res.CorrectWords != 3 || res.ElapsedSeconds != 6 || res.WPM != 30 {
		t.Fatalf("unexpected score: %+v", res)
	}
}
