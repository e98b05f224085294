package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
	if cfg.Paths.Pages != DefaultPages {
		t.Errorf("Paths.Pages = %q, want %q", cfg.Paths.Pages, DefaultPages)
	}
	if len(cfg.Generator.Extensions) != 1 || cfg.Generator.Extensions[0] != ".go" {
		t.Errorf("Generator.Extensions = %v, want [.go]", cfg.Generator.Extensions)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if err == nil {
		t.Error("Expected error for missing config")
	}

	// Create a config file
	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "name": "test-app",
  "paths": {
    "pages": "src/pages"
  },
  "dev": {
    "port": 8080,
    "host": "0.0.0.0"
  },
  "generator": {
    "layouts": true,
    "extensions": [".go", ".tsx"]
  },
  "publish": {
    "bucket": "test-bucket",
    "region": "us-east-1"
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Name != "test-app" {
		t.Errorf("Name = %q, want %q", cfg.Name, "test-app")
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("Dev.Port = %d, want 8080", cfg.Dev.Port)
	}
	if cfg.Dev.Host != "0.0.0.0" {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, "0.0.0.0")
	}
	if cfg.Paths.Pages != "src/pages" {
		t.Errorf("Paths.Pages = %q, want %q", cfg.Paths.Pages, "src/pages")
	}
	if !cfg.Generator.Layouts {
		t.Error("Generator.Layouts = false, want true")
	}
	if len(cfg.Generator.Extensions) != 2 {
		t.Errorf("Generator.Extensions = %v, want two entries", cfg.Generator.Extensions)
	}
	if cfg.Publish.Bucket != "test-bucket" {
		t.Errorf("Publish.Bucket = %q, want %q", cfg.Publish.Bucket, "test-bucket")
	}

	// Defaults fill in the unspecified fields.
	if cfg.Paths.Layouts != DefaultLayouts {
		t.Errorf("Paths.Layouts = %q, want %q", cfg.Paths.Layouts, DefaultLayouts)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want %q", cfg.Output, DefaultOutput)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E041") {
		t.Errorf("error = %v, want code E041", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Name = "saved-app"
	cfg.Dev.Port = 4000
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	reloaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reloaded.Name != "saved-app" {
		t.Errorf("Name = %q, want %q", reloaded.Name, "saved-app")
	}
	if reloaded.Dev.Port != 4000 {
		t.Errorf("Dev.Port = %d, want 4000", reloaded.Dev.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg := New()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}

	cfg.Dev.Port = 99999
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an out-of-range port")
	}

	cfg = New()
	cfg.Generator.Extensions = []string{"go"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject an extension without a leading dot")
	}
}

func TestPaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got, want := cfg.PagesPath(), filepath.Join(tmpDir, DefaultPages); got != want {
		t.Errorf("PagesPath() = %q, want %q", got, want)
	}
	if got, want := cfg.LayoutsPath(), filepath.Join(tmpDir, DefaultLayouts); got != want {
		t.Errorf("LayoutsPath() = %q, want %q", got, want)
	}
	if got, want := cfg.OutputPath(), filepath.Join(tmpDir, DefaultOutput); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestDevAddress(t *testing.T) {
	cfg := New()
	cfg.Dev.Host = "localhost"
	cfg.Dev.Port = 3000

	if got := cfg.DevAddress(); got != "localhost:3000" {
		t.Errorf("DevAddress() = %q, want %q", got, "localhost:3000")
	}
	if got := cfg.DevURL(); got != "http://localhost:3000" {
		t.Errorf("DevURL() = %q, want %q", got, "http://localhost:3000")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot() error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot() = %q, want %q", root, tmpDir)
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists() = true for a directory without a config")
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists() = false for a directory with a config")
	}
}
