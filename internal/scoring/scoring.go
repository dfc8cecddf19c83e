// Package scoring compares typed text with a prompt and derives WPM.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/verte-zerg/typeracer/internal/model"
)

var nonWord = regexp.MustCompile(`[^\w']+`)

// NormalizeWord lower-cases word and strips everything that is not a word
// character or an apostrophe.
func NormalizeWord(word string) string {
	return strings.ToLower(nonWord.ReplaceAllString(word, ""))
}

// Normalize splits text into comparable tokens. Words that normalize to an
// empty string are dropped.
func Normalize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if tok := NormalizeWord(f); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// NormalizeAligned returns one token per whitespace-delimited word of text.
// A word that normalizes to an empty string keeps its position: the raw word
// stands in for it, so punctuation-only words only match themselves.
func NormalizeAligned(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, len(fields))
	for i, f := range fields {
		if tok := NormalizeWord(f); tok != "" {
			tokens[i] = tok
			continue
		}
		tokens[i] = f
	}
	return tokens
}

// CountCorrectWords counts positions where the normalized prompt and typed
// tokens are identical. Words past the shorter sequence are not compared.
func CountCorrectWords(prompt, typed string) int {
	want := Normalize(prompt)
	got := Normalize(typed)
	n := min(len(want), len(got))
	correct := 0
	for i := 0; i < n; i++ {
		if want[i] == got[i] {
			correct++
		}
	}
	return correct
}

// ComputeWPM extrapolates correct words to a per-minute rate, rounded to the
// nearest integer. A non-positive elapsed time yields 0.
func ComputeWPM(correctWords int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 || math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		return 0
	}
	return int(math.Round(float64(correctWords) / (elapsedSeconds / 60)))
}

// Highlight classifies every raw prompt word against the typed word at the
// same position. Prompt words past the typed text stay unscored.
func Highlight(prompt, typed string) []model.Token {
	raw := strings.Fields(prompt)
	want := NormalizeAligned(prompt)
	got := NormalizeAligned(typed)

	tokens := make([]model.Token, len(raw))
	for i, word := range raw {
		tokens[i] = model.Token{Word: word}
		if i >= len(got) {
			continue
		}
		if want[i] == got[i] {
			tokens[i].Status = model.Correct
		} else {
			tokens[i].Status = model.Incorrect
		}
	}
	return tokens
}

// JoinTokens rebuilds display text from tokens with single spaces.
func JoinTokens(tokens []model.Token) string {
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = tok.Word
	}
	return strings.Join(words, " ")
}

// Score computes the final result for a stopped session.
func Score(prompt, typed string, elapsedSeconds float64) model.ScoreResult {
	correct := CountCorrectWords(prompt, typed)
	return model.ScoreResult{
		CorrectWords:   correct,
		ElapsedSeconds: elapsedSeconds,
		WPM:            ComputeWPM(correct, elapsedSeconds),
	}
}
