package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
)

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Level != nil || cfg.Web.Addr != nil || cfg.Log.Level != nil {
		t.Fatalf("expected commented template to set nothing, got %+v", cfg)
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	var level int
	var addr string
	cmd.Flags().IntVar(&level, "level", 1, "")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "")
	if err := cmd.Flags().Set("addr", ":9000"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfgLevel := 3
	cfgAddr := ":7000"
	applyIntConfig(cmd, "level", &level, &cfgLevel)
	applyStringConfig(cmd, "addr", &addr, &cfgAddr)

	if level != 3 {
		t.Fatalf("expected config level 3, got %d", level)
	}
	if addr != ":9000" {
		t.Fatalf("expected flag addr to win, got %q", addr)
	}

	applyIntConfig(cmd, "level", &level, nil)
	if level != 3 {
		t.Fatalf("expected nil config to keep level, got %d", level)
	}
}

func TestNewRootCmdRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "levels", "prompts", "config"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Fatalf("expected %s subcommand: %v", name, err)
		}
	}
	if _, _, err := root.Find([]string{"prompts", "import"}); err != nil {
		t.Fatalf("expected prompts import: %v", err)
	}
}
