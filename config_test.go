package coroutines

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coroutines.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadConfig verifies YAML loading with explicit values
// Given: A config file setting every field
// When: It is loaded
// Then: All fields carry the file's values
func TestLoadConfig(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
name: game
workers: 4
process_hz: 120
physics_hz: 30
history_capacity: 50
`)

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{Name: "game", Workers: 4, ProcessHz: 120, PhysicsHz: 30, HistoryCapacity: 50}
	if cfg != want {
		t.Fatalf("cfg = %+v, want %+v", cfg, want)
	}
}

// TestLoadConfigDefaults verifies zero fields fall back to defaults
// Given: A config file setting only the name
// When: It is loaded
// Then: The unset fields take the documented defaults
func TestLoadConfigDefaults(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, "name: partial\n")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "partial" {
		t.Fatalf("name = %q, want partial", cfg.Name)
	}
	if cfg.Workers != runtime.GOMAXPROCS(0) {
		t.Fatalf("workers = %d, want GOMAXPROCS", cfg.Workers)
	}
	if cfg.ProcessHz != 60 || cfg.PhysicsHz != 60 {
		t.Fatalf("tick rates = %v/%v, want 60/60", cfg.ProcessHz, cfg.PhysicsHz)
	}
	if cfg.HistoryCapacity != 100 {
		t.Fatalf("history capacity = %d, want 100", cfg.HistoryCapacity)
	}
}

// TestLoadConfigErrors verifies the failure paths
// Given: A missing file, malformed YAML and negative values
// When: Each is loaded
// Then: Every load fails
func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml")},
		{"malformed yaml", writeConfigFile(t, "workers: [not a number\n")},
		{"negative workers", writeConfigFile(t, "workers: -1\n")},
		{"negative tick rate", writeConfigFile(t, "process_hz: -60\n")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(tc.path); err == nil {
				t.Fatal("LoadConfig should fail")
			}
		})
	}
}
