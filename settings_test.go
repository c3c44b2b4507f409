package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", s.Provider)
	}
	if s.Theme != "default" {
		t.Errorf("Theme = %q, want default", s.Theme)
	}
	if s.Model != "" {
		t.Errorf("Model = %q, want empty", s.Model)
	}
}

func TestLoadSettingsFrom(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file returns defaults", func(t *testing.T) {
		s, err := LoadSettingsFrom(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Provider != "gemini" || s.Theme != "default" {
			t.Errorf("expected defaults, got %+v", s)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		if err := os.WriteFile(path, []byte("model: gemini-1.5-pro\n"), 0644); err != nil {
			t.Fatal(err)
		}

		s, err := LoadSettingsFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Model != "gemini-1.5-pro" {
			t.Errorf("Model = %q, want gemini-1.5-pro", s.Model)
		}
		if s.Provider != "gemini" {
			t.Errorf("Provider = %q, want gemini", s.Provider)
		}
	})

	t.Run("full file", func(t *testing.T) {
		path := filepath.Join(dir, "full.yaml")
		content := "provider: bedrock\nmodel: m\nendpoint: http://localhost\nregion: eu-central-1\ntheme: dracula\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		s, err := LoadSettingsFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Settings{Provider: "bedrock", Model: "m", Endpoint: "http://localhost", Region: "eu-central-1", Theme: "dracula"}
		if *s != want {
			t.Errorf("got %+v, want %+v", *s, want)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("provider: [unclosed\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadSettingsFrom(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadSettingsHonoursEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("theme: gruvbox\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKSAI_SETTINGS", path)

	got, err := SettingsPath()
	if err != nil || got != path {
		t.Fatalf("SettingsPath() = %q, %v; want %q", got, err, path)
	}

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Theme != "gruvbox" {
		t.Errorf("Theme = %q, want gruvbox", s.Theme)
	}
}
