// Package main provides the CLI entrypoint for typeracer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
	"github.com/verte-zerg/typeracer/internal/logging"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/prompt"
	"github.com/verte-zerg/typeracer/internal/report"
	"github.com/verte-zerg/typeracer/internal/store"
	"github.com/verte-zerg/typeracer/internal/tui"
	"github.com/verte-zerg/typeracer/internal/web"
)

const (
	defaultLevel     = int(model.DefaultLevel)
	defaultAddr      = ":8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

var (
	logLevel  string
	logFormat string
	logFile   string

	practiceLevel       int
	practiceFreshPrompt bool

	serveAddr string

	promptsLevel int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeracer",
		Short:         "Typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", defaultLogFormat, "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().IntVar(&practiceLevel, "level", defaultLevel, "starting difficulty level")
	rootCmd.Flags().BoolVar(&practiceFreshPrompt, "fresh-prompt", false, "draw a new prompt on every start")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newPromptsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, fileCfg)

	// The alternate screen owns stderr, so logs only go to --log-file.
	log, closeLog, err := newLogger(cmd, fileCfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	bank, err := buildBank(cmd.Context(), fileCfg, log)
	if err != nil {
		return err
	}

	cfg := model.Config{Level: model.Level(practiceLevel), FreshPrompt: practiceFreshPrompt}
	m, err := tui.NewModel(cfg, bank, log)
	if err != nil {
		return fmt.Errorf("failed to wire trainer: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trainer to a browser",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().IntVar(&practiceLevel, "level", defaultLevel, "default difficulty level")
	cmd.Flags().BoolVar(&practiceFreshPrompt, "fresh-prompt", false, "draw a new prompt on every start")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, fileCfg)
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Web.Addr)

	log, closeLog, err := newLogger(cmd, fileCfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bank, err := buildBank(ctx, fileCfg, log)
	if err != nil {
		return err
	}

	srv := web.New(web.Config{
		Addr:           serveAddr,
		AllowedOrigins: fileCfg.Web.AllowedOrigins,
		Practice:       model.Config{Level: model.Level(practiceLevel), FreshPrompt: practiceFreshPrompt},
	}, bank, log)
	return srv.Run(ctx)
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List difficulty levels and prompt counts",
		Args:  cobra.NoArgs,
		RunE:  runLevelsCmd,
	}
}

func runLevelsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, closeLog, err := newLogger(cmd, fileCfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	bank, err := buildBank(cmd.Context(), fileCfg, log)
	if err != nil {
		return err
	}
	levels := bank.Levels()
	summaries := make([]report.LevelSummary, 0, len(levels))
	for _, l := range levels {
		summaries = append(summaries, report.LevelSummary{Level: l, Prompts: len(bank.Pool(l))})
	}
	if err := report.RenderLevels(cmd.OutOrStdout(), summaries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPromptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Manage the local prompt library",
	}

	addCmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Add a prompt",
		Args:  cobra.ExactArgs(1),
		RunE:  runPromptsAddCmd,
	}
	addCmd.Flags().IntVar(&promptsLevel, "level", defaultLevel, "difficulty level")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored prompts",
		Args:  cobra.NoArgs,
		RunE:  runPromptsListCmd,
	}
	listCmd.Flags().IntVar(&promptsLevel, "level", 0, "only list this level")

	removeCmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a stored prompt",
		Args:  cobra.ExactArgs(1),
		RunE:  runPromptsRemoveCmd,
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import prompts from a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE:  runPromptsImportCmd,
	}
	importCmd.Flags().IntVar(&promptsLevel, "level", defaultLevel, "difficulty level")

	cmd.AddCommand(addCmd, listCmd, removeCmd, importCmd)
	return cmd
}

func runPromptsAddCmd(cmd *cobra.Command, args []string) error {
	return addPrompts(cmd, []string{args[0]})
}

func runPromptsImportCmd(cmd *cobra.Command, args []string) error {
	prompts, err := prompt.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load prompts: %w", err)
	}
	return addPrompts(cmd, prompts)
}

func addPrompts(cmd *cobra.Command, texts []string) error {
	if promptsLevel <= 0 {
		return fmt.Errorf("--level must be > 0")
	}
	return withStore(func(st *store.Store) error {
		added, err := st.AddPrompts(cmd.Context(), model.Level(promptsLevel), texts, time.Now())
		if err != nil {
			return fmt.Errorf("failed to add prompts: %w", err)
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %d prompt(s) to level %d (%d skipped)\n", added, promptsLevel, len(texts)-added)
		return err
	})
}

func runPromptsListCmd(cmd *cobra.Command, _ []string) error {
	return withStore(func(st *store.Store) error {
		prompts, err := st.ListPrompts(cmd.Context(), model.Level(promptsLevel))
		if err != nil {
			return fmt.Errorf("failed to list prompts: %w", err)
		}
		width := 0
		if f, ok := cmd.OutOrStdout().(*os.File); ok {
			width = report.TerminalWidth(f)
		}
		if err := report.RenderPrompts(cmd.OutOrStdout(), prompts, width); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	})
}

func runPromptsRemoveCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid prompt id %q", args[0])
	}
	return withStore(func(st *store.Store) error {
		if err := st.RemovePrompt(cmd.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no prompt with id %d", id)
			}
			return fmt.Errorf("failed to remove prompt: %w", err)
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed prompt %d\n", id)
		return err
	})
}

func withStore(fn func(*store.Store) error) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	return fn(st)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// buildBank merges the built-in prompts with the config file and the prompt
// library. An unreadable library is logged and skipped.
func buildBank(ctx context.Context, fileCfg config.FileConfig, log logrus.FieldLogger) (*prompt.Bank, error) {
	bank, err := prompt.NewBank(prompt.DefaultPools())
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt bank: %w", err)
	}
	extra, err := fileCfg.PromptPools()
	if err != nil {
		return nil, fmt.Errorf("failed to read config prompts: %w", err)
	}
	bank.Merge(extra)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		log.WithError(err).Warn("prompt library unavailable; using built-in prompts")
		return bank, nil
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()
	stored, err := st.PromptPools(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to load prompt library; using built-in prompts")
		return bank, nil
	}
	bank.Merge(stored)
	return bank, nil
}

// newLogger builds the logger from flags and config. out overrides the
// destination unless --log-file is set; nil means stderr.
func newLogger(cmd *cobra.Command, fileCfg config.FileConfig, out io.Writer) (*logrus.Logger, func(), error) {
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close log file: %v\n", cerr)
			}
		}
	}
	log, err := logging.New(logging.Options{Level: logLevel, Format: logFormat, Output: out})
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return log, closeFn, nil
}

func applyPracticeConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyIntConfig(cmd, "level", &practiceLevel, fileCfg.Practice.Level)
	applyBoolConfig(cmd, "fresh-prompt", &practiceFreshPrompt, fileCfg.Practice.FreshPrompt)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeracer configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# level = %d               # Starting difficulty level
# fresh-prompt = false     # Draw a new prompt on every start

[web]
# addr = %q
# allowed-origins = ["http://localhost:3000"]

[log]
# level = %q
# format = %q

# Extra prompts per level, merged with the built-in ones.
[prompts]
# "1" = ["The cat sat on the mat."]
`,
		defaultLevel,
		defaultAddr,
		defaultLogLevel,
		defaultLogFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
