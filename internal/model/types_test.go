package model

import "testing"

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want Level
	}{
		{"1", LevelEasy},
		{"2", LevelMedium},
		{" 3 ", LevelHard},
		{"+2", LevelMedium},
		{"7", Level(7)},
		{"", DefaultLevel},
		{"0", DefaultLevel},
		{"-1", DefaultLevel},
		{"hard", DefaultLevel},
		{"2.5", DefaultLevel},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.raw); got != tc.want {
			t.Fatalf("ParseLevel(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelEasy, "easy"},
		{LevelMedium, "medium"},
		{LevelHard, "hard"},
		{Level(4), "level 4"},
		{Level(0), "easy"},
		{Level(-3), "easy"},
	}
	for _, tc := range cases {
		if got := tc.level.Label(); got != tc.want {
			t.Fatalf("Level(%d).Label() = %q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if got := Level(12).String(); got != "12" {
		t.Fatalf("expected \"12\", got %q", got)
	}
}
