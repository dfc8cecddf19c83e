// Package model defines shared data structures.
package model

import (
	"strconv"
	"strings"
	"time"
)

// Level identifies a difficulty level and selects a prompt pool.
type Level int

// Built-in difficulty levels.
const (
	LevelEasy   Level = 1
	LevelMedium Level = 2
	LevelHard   Level = 3
)

// DefaultLevel is used whenever a level value is missing or unknown.
const DefaultLevel = LevelEasy

var levelLabels = map[Level]string{
	LevelEasy:   "easy",
	LevelMedium: "medium",
	LevelHard:   "hard",
}

// ParseLevel converts a raw control value into a Level. Anything that is not
// a positive integer yields DefaultLevel.
func ParseLevel(raw string) Level {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return DefaultLevel
	}
	return Level(n)
}

// Label returns the display label for the level.
func (l Level) Label() string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	if l > LevelHard {
		return "level " + strconv.Itoa(int(l))
	}
	return levelLabels[DefaultLevel]
}

// String implements fmt.Stringer.
func (l Level) String() string {
	return strconv.Itoa(int(l))
}

// Correctness classifies a prompt word against the typed text.
type Correctness int

// Word classifications.
const (
	Unscored Correctness = iota
	Correct
	Incorrect
)

// String implements fmt.Stringer.
func (c Correctness) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unscored"
	}
}

// Token is one raw prompt word with its classification.
type Token struct {
	Word   string
	Status Correctness
}

// ScoreResult summarizes a stopped session.
type ScoreResult struct {
	CorrectWords   int
	ElapsedSeconds float64
	WPM            int
}

// StoredPrompt is a user-added prompt in the prompt library.
type StoredPrompt struct {
	ID        int64
	Level     Level
	Text      string
	CreatedAt time.Time
}

// Config defines practice settings.
type Config struct {
	Level       Level
	FreshPrompt bool
}
