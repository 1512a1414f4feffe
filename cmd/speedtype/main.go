// Package main provides the CLI entrypoint for speedtype.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/speedtype/internal/config"
	"github.com/verte-zerg/speedtype/internal/engine"
	"github.com/verte-zerg/speedtype/internal/generator"
	"github.com/verte-zerg/speedtype/internal/model"
	"github.com/verte-zerg/speedtype/internal/stats"
	"github.com/verte-zerg/speedtype/internal/statsui"
	"github.com/verte-zerg/speedtype/internal/store"
	"github.com/verte-zerg/speedtype/internal/tui"
	"github.com/verte-zerg/speedtype/internal/wordlist"
)

const (
	defaultDuration     = engine.DefaultDuration
	defaultErrorCeiling = engine.DefaultErrorCeiling
	defaultWords        = generator.DefaultWords
	defaultCaps         = 0.0
	defaultPunct        = 0.0
	defaultSound        = true
	defaultHistory      = true
	defaultStatsWindow  = 5
	terminalWidthBackup = 80
)

const defaultPunctSet = ".,!?;:"

var (
	testDuration     int
	testErrorCeiling int
	testWords        int
	testCaps         float64
	testPunct        float64
	testPunctSet     string
	testWordList     string
	testSound        bool
	testHistory      bool

	statsSince  string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "speedtype",
		Short:         "Timed typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testDuration, "duration", defaultDuration, "test length in seconds")
	rootCmd.Flags().IntVar(&testErrorCeiling, "error-ceiling", defaultErrorCeiling, "incorrect keystrokes that end the test")
	rootCmd.Flags().IntVar(&testWords, "words", defaultWords, "words per text")
	rootCmd.Flags().Float64Var(&testCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&testPunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&testPunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().StringVar(&testWordList, "wordlist", "", "corpus name in the wordlist dir or path to a file (default: built-in)")
	rootCmd.Flags().BoolVar(&testSound, "sound", defaultSound, "ring the terminal bell on mistakes")
	rootCmd.Flags().BoolVar(&testHistory, "history", defaultHistory, "save finished results")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCorporaCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveTestConfig(cmd, fileCfg.Test)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !isInteractive(os.Stdout) {
		return fmt.Errorf("speedtype needs an interactive terminal")
	}

	wordPath := config.WordListPath(cfg.WordList)
	corpus, err := wordlist.Load(wordPath)
	if err != nil {
		return wordListLoadError(cfg.WordList, wordPath, err)
	}
	gen, err := generator.New(corpus, generator.Options{
		Words:    cfg.Words,
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	})
	if err != nil {
		return fmt.Errorf("failed to build text generator: %w", err)
	}

	var recorder tui.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open history db, results will not be saved: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			recorder = st
		}
	}

	session := engine.New(engine.Options{
		Duration:     cfg.Duration,
		ErrorCeiling: cfg.ErrorCeiling,
		Placeholder:  placeholderFor(cfg.Duration),
		Generate:     gen.Generate,
		OnError:      tui.Bell(os.Stderr, cfg.Sound),
	})
	m := tui.NewModel(cfg, session, recorder)
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveTestConfig(cmd *cobra.Command, file config.TestConfig) model.Config {
	applyIntConfig(cmd, "duration", &testDuration, file.Duration)
	applyIntConfig(cmd, "error-ceiling", &testErrorCeiling, file.ErrorCeiling)
	applyIntConfig(cmd, "words", &testWords, file.Words)
	applyFloatConfig(cmd, "caps", &testCaps, file.CapsPct)
	applyFloatConfig(cmd, "punct", &testPunct, file.PunctPct)
	applyStringConfig(cmd, "punct-set", &testPunctSet, file.PunctSet)
	applyStringConfig(cmd, "wordlist", &testWordList, file.WordList)
	applyBoolConfig(cmd, "sound", &testSound, file.Sound)
	applyBoolConfig(cmd, "history", &testHistory, file.History)

	return model.Config{
		Duration:     testDuration,
		ErrorCeiling: testErrorCeiling,
		Words:        testWords,
		CapsPct:      testCaps,
		PunctPct:     testPunct,
		PunctSet:     testPunctSet,
		WordList:     testWordList,
		Sound:        testSound,
		History:      testHistory,
	}
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

func newCorporaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpora",
		Short: "List word lists available to --wordlist",
		Args:  cobra.NoArgs,
		RunE:  runCorporaCmd,
	}
}

func runCorporaCmd(cmd *cobra.Command, _ []string) error {
	names, err := listCorpora(config.DefaultWordListDir())
	if err != nil {
		return err
	}
	return writeCorpora(cmd.OutOrStdout(), names)
}

func listCorpora(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read wordlist directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

func writeCorpora(w io.Writer, names []string) error {
	if _, err := fmt.Fprintln(w, "builtin (default)"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show result history (plain text when piped)",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N results")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig(statsSince, statsLast, statsWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if isInteractive(os.Stdout) {
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), sparklineWidth(terminalWidth())); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildStatsConfig(since string, last, window int) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: last, Window: window}
	if last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return cfg, fmt.Errorf("--window must be >= 1")
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// sparklineWidth leaves room for the row label and trailing value.
func sparklineWidth(total int) int {
	const labelWidth = 18
	if total-labelWidth < 10 {
		return 10
	}
	return total - labelWidth
}

func isInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func placeholderFor(duration int) string {
	if duration == 60 {
		return engine.DefaultPlaceholder
	}
	return fmt.Sprintf("Welcome, press enter to begin the %d-second typing speed test", duration)
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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
	return fmt.Sprintf(`# speedtype configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test length in seconds
# error-ceiling = %d      # Incorrect keystrokes that end the test
# words = %d              # Words per text
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q          # Punctuation set
# wordlist = ""           # Corpus name or path (empty: built-in)
# sound = %t              # Ring the terminal bell on mistakes
# history = %t            # Save finished results
`,
		defaultDuration,
		defaultErrorCeiling,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultSound,
		defaultHistory,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if cfg.ErrorCeiling <= 0 {
		return fmt.Errorf("--error-ceiling must be > 0")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	for _, r := range cfg.PunctSet {
		if !engine.Allowed(string(r)) || r == ' ' {
			return fmt.Errorf("--punct-set contains untypeable character %q", r)
		}
	}
	return nil
}

func wordListLoadError(name, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		fmt.Sprintf("corpus %q not found", name),
		"Run: speedtype corpora",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
