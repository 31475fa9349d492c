package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
primitive = "torus"
size = 3.0
spin = 0.01
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Primitive != "torus" {
		t.Errorf("primitive = %q", cfg.Primitive)
	}
	if cfg.Size != 3.0 {
		t.Errorf("size = %f", cfg.Size)
	}
	if cfg.Spin != 0.01 {
		t.Errorf("spin = %f", cfg.Spin)
	}
	// keys the file does not set keep their defaults
	def := defaultConfig()
	if cfg.Width != def.Width || cfg.Height != def.Height {
		t.Errorf("window size = %dx%d, want defaults %dx%d", cfg.Width, cfg.Height, def.Width, def.Height)
	}
	if cfg.Distance != def.Distance {
		t.Errorf("distance = %f, want default %f", cfg.Distance, def.Distance)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"unknown primitive", `primitive = "teapot"`},
		{"zero size", `size = 0.0`},
		{"negative window", `width = -1`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tc.content)); err == nil {
				t.Error("bad config loaded without error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestBuildPrimitiveCoversAllNames(t *testing.T) {
	names := []string{
		"plane", "cube", "cylinder", "sphere", "torus",
		"tetrahedron", "octahedron", "icosahedron", "dodecahedron",
	}
	for _, name := range names {
		m, err := buildPrimitive(name, 2)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if m.FaceCount() == 0 {
			t.Errorf("%s: empty mesh", name)
		}
	}
	if _, err := buildPrimitive("teapot", 2); err == nil {
		t.Error("unknown primitive built without error")
	}
}
