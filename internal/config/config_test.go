package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearQuizmdEnv keeps ambient QUIZMD_* variables from leaking into tests.
func clearQuizmdEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QUIZMD_DB", "QUIZMD_LOG", "QUIZMD_STRICT", "QUIZMD_REVIEW_LIMIT", "QUIZMD_REVIEW_OPTIONS"} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Log != "prod" {
		t.Errorf("Log = %q, want %q", cfg.Log, "prod")
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
	if cfg.Review.Limit != 0 || cfg.Review.Options != 0 {
		t.Errorf("Review = %+v, want zero values", cfg.Review)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearQuizmdEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log != "prod" {
		t.Errorf("Log = %q, want %q", cfg.Log, "prod")
	}
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	clearQuizmdEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db: /tmp/quiz.db\nlog: dev\nstrict: true\nreview:\n  limit: 20\n  options: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB != "/tmp/quiz.db" {
		t.Errorf("DB = %q, want /tmp/quiz.db", cfg.DB)
	}
	if cfg.Log != "dev" {
		t.Errorf("Log = %q, want dev", cfg.Log)
	}
	if !cfg.Strict {
		t.Error("Strict = false, want true")
	}
	if cfg.Review.Limit != 20 || cfg.Review.Options != 4 {
		t.Errorf("Review = %+v, want limit 20, options 4", cfg.Review)
	}
}

func TestLoad_DefaultLocationFile(t *testing.T) {
	clearQuizmdEnv(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "quizmd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: dev\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log != "dev" {
		t.Errorf("Log = %q, want dev", cfg.Log)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	clearQuizmdEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for explicitly named missing file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearQuizmdEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db: /from/file.db\nreview:\n  limit: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("QUIZMD_DB", "/from/env.db")
	t.Setenv("QUIZMD_REVIEW_LIMIT", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB != "/from/env.db" {
		t.Errorf("DB = %q, want the env value", cfg.DB)
	}
	if cfg.Review.Limit != 9 {
		t.Errorf("Review.Limit = %d, want 9", cfg.Review.Limit)
	}
}

func TestLoad_BadEnvNumber(t *testing.T) {
	clearQuizmdEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("QUIZMD_REVIEW_LIMIT", "lots")

	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric QUIZMD_REVIEW_LIMIT")
	}
}

func TestLoad_InvalidLogMode(t *testing.T) {
	clearQuizmdEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("QUIZMD_LOG", "loud")

	if _, err := Load(""); err == nil {
		t.Error("expected error for unknown log mode")
	}
}

func TestDefaultPath_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	want := filepath.Join("/xdg", "quizmd", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
