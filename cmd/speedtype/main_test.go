package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/speedtype/internal/config"
	"github.com/verte-zerg/speedtype/internal/model"
)

func validConfig() model.Config {
	return model.Config{
		Duration:     60,
		ErrorCeiling: 50,
		Words:        50,
		PunctSet:     defaultPunctSet,
		Sound:        true,
		History:      true,
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*model.Config) {}},
		{name: "zero duration", mutate: func(c *model.Config) { c.Duration = 0 }, wantErr: "--duration"},
		{name: "negative ceiling", mutate: func(c *model.Config) { c.ErrorCeiling = -1 }, wantErr: "--error-ceiling"},
		{name: "zero words", mutate: func(c *model.Config) { c.Words = 0 }, wantErr: "--words"},
		{name: "caps above one", mutate: func(c *model.Config) { c.CapsPct = 1.5 }, wantErr: "--caps"},
		{name: "negative punct", mutate: func(c *model.Config) { c.PunctPct = -0.1 }, wantErr: "--punct"},
		{name: "empty punct set", mutate: func(c *model.Config) { c.PunctPct = 0.2; c.PunctSet = "" }, wantErr: "--punct-set"},
		{name: "space in punct set", mutate: func(c *model.Config) { c.PunctSet = ". " }, wantErr: "untypeable"},
		{name: "tab in punct set", mutate: func(c *model.Config) { c.PunctSet = "\t" }, wantErr: "untypeable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := validateConfig(cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveTestConfigLayering(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--duration", "30", "--sound=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	duration := 120
	words := 25
	sound := true
	history := false
	wordList := "english"
	cfg := resolveTestConfig(cmd, config.TestConfig{
		Duration: &duration,
		Words:    &words,
		Sound:    &sound,
		History:  &history,
		WordList: &wordList,
	})

	if cfg.Duration != 30 {
		t.Fatalf("expected flag duration 30, got %d", cfg.Duration)
	}
	if cfg.Words != 25 {
		t.Fatalf("expected file words 25, got %d", cfg.Words)
	}
	if cfg.Sound {
		t.Fatalf("expected flag to disable sound")
	}
	if cfg.History {
		t.Fatalf("expected file to disable history")
	}
	if cfg.WordList != "english" {
		t.Fatalf("expected file wordlist, got %q", cfg.WordList)
	}
	if cfg.ErrorCeiling != defaultErrorCeiling {
		t.Fatalf("expected default error ceiling, got %d", cfg.ErrorCeiling)
	}
	if cfg.PunctSet != defaultPunctSet {
		t.Fatalf("expected default punct set, got %q", cfg.PunctSet)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	tmpl := defaultConfigTemplate()
	for _, key := range []string{"duration", "error-ceiling", "words", "caps", "punct", "punct-set", "wordlist", "sound", "history"} {
		if !strings.Contains(tmpl, "# "+key+" = ") {
			t.Fatalf("expected template to mention %q:\n%s", key, tmpl)
		}
	}

	var uncommented strings.Builder
	for _, line := range strings.Split(tmpl, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, " = ") {
			line = strings.TrimPrefix(line, "# ")
		}
		uncommented.WriteString(line)
		uncommented.WriteString("\n")
	}
	var cfg config.FileConfig
	if _, err := toml.Decode(uncommented.String(), &cfg); err != nil {
		t.Fatalf("uncommented template should decode: %v\n%s", err, uncommented.String())
	}
	if cfg.Test.Duration == nil || *cfg.Test.Duration != defaultDuration {
		t.Fatalf("expected duration %d, got %v", defaultDuration, cfg.Test.Duration)
	}
	if cfg.Test.PunctSet == nil || *cfg.Test.PunctSet != defaultPunctSet {
		t.Fatalf("expected punct set %q, got %v", defaultPunctSet, cfg.Test.PunctSet)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	cfg, err := buildStatsConfig("2026-03-04", 10, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Format("2006-01-02") != "2026-03-04" {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if cfg.Last != 10 || cfg.Window != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := buildStatsConfig("03/04/2026", 0, 1); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if _, err := buildStatsConfig("", -1, 1); err == nil {
		t.Fatalf("expected negative last error")
	}
	if _, err := buildStatsConfig("", 0, 0); err == nil {
		t.Fatalf("expected window error")
	}
}

func TestListCorpora(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"german.txt", "english.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("word\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names, err := listCorpora(dir)
	if err != nil {
		t.Fatalf("list corpora: %v", err)
	}
	if strings.Join(names, ",") != "english,german" {
		t.Fatalf("unexpected corpora: %v", names)
	}

	var buf bytes.Buffer
	if err := writeCorpora(&buf, names); err != nil {
		t.Fatalf("write corpora: %v", err)
	}
	if buf.String() != "builtin (default)\nenglish\ngerman\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}

	missing, err := listCorpora(filepath.Join(dir, "missing"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v, %v", missing, err)
	}
}

func TestPlaceholderFor(t *testing.T) {
	if got := placeholderFor(60); !strings.Contains(got, "one-minute") {
		t.Fatalf("unexpected default placeholder: %q", got)
	}
	if got := placeholderFor(30); !strings.Contains(got, "30-second") {
		t.Fatalf("unexpected placeholder: %q", got)
	}
}

func TestSparklineWidth(t *testing.T) {
	if got := sparklineWidth(80); got != 62 {
		t.Fatalf("expected 62, got %d", got)
	}
	if got := sparklineWidth(20); got != 10 {
		t.Fatalf("expected minimum 10, got %d", got)
	}
}
