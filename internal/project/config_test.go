package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"bulloak/internal/project"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	cfg, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (project.Config{}) {
		t.Errorf("cfg = %+v, want zero", cfg)
	}
}

func TestLoadDecodesFile(t *testing.T) {
	dir := t.TempDir()
	content := `[scaffold]
solidity_version = "0.8.19"
skip_modifiers = true

[check]
no_cache = true
`
	if err := os.WriteFile(filepath.Join(dir, project.ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scaffold.SolidityVersion != "0.8.19" {
		t.Errorf("solidity_version = %q", cfg.Scaffold.SolidityVersion)
	}
	if !cfg.Scaffold.SkipModifiers {
		t.Error("scaffold.skip_modifiers not decoded")
	}
	if !cfg.Check.NoCache {
		t.Error("check.no_cache not decoded")
	}
	if cfg.Check.SkipModifiers {
		t.Error("check.skip_modifiers must default to false")
	}
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "[scaffold]\nsolidity_version = \"0.8.1\"\n"
	if err := os.WriteFile(filepath.Join(root, project.ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := project.Load(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scaffold.SolidityVersion != "0.8.1" {
		t.Errorf("solidity_version = %q", cfg.Scaffold.SolidityVersion)
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, project.ConfigFileName), []byte("[scaffold\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := project.Load(dir); err == nil {
		t.Fatal("expected a decode error")
	}
}
