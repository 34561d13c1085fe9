package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engcheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Registry != "standards/standards.json" {
		t.Errorf("Registry = %q", c.Registry)
	}
	if c.Format != "text" || c.Workers != 4 || c.Log.Level != "info" || c.Log.Format != "text" {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvRegistry, "")
	t.Setenv(EnvLogLevel, "")
	path := writeConfig(t, `registry: catalogs/nec.yaml
format: json
workers: 8
evidence: true
log:
  level: debug
  format: json
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Registry != "catalogs/nec.yaml" || c.Format != "json" || c.Workers != 8 || !c.Evidence {
		t.Errorf("unexpected config: %+v", c)
	}
	if c.Log.Level != "debug" || c.Log.Format != "json" {
		t.Errorf("unexpected log config: %+v", c.Log)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	t.Setenv(EnvRegistry, "")
	t.Setenv(EnvLogLevel, "")
	c, err := Load(writeConfig(t, "workers: 2\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Workers != 2 || c.Format != "text" || c.Registry != "standards/standards.json" {
		t.Errorf("unexpected config: %+v", c)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRegistry, "/etc/engcheck/standards.json")
	t.Setenv(EnvLogLevel, "warn")
	c, err := Load(writeConfig(t, "registry: local.json\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Registry != "/etc/engcheck/standards.json" {
		t.Errorf("Registry = %q, want env override", c.Registry)
	}
	if c.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", c.Log.Level)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvRegistry, "")
	t.Setenv(EnvLogLevel, "")
	t.Chdir(t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c != Default() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "registry: [unterminated\n")); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	t.Setenv(EnvRegistry, "")
	t.Setenv(EnvLogLevel, "")
	c, err := Load(writeConfig(t, "format: xml\nlog:\n  format: logfmt\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Format != "xml" || c.Log.Format != "logfmt" {
		t.Errorf("values should be kept as written: %+v", c)
	}
	if ValidateFormat(c.Format) == nil || c.Log.Validate() == nil {
		t.Error("the loaded values should be rejected once validated")
	}

	c.Format = "json"
	c.Log.Format = "json"
	if err := ValidateFormat(c.Format); err != nil {
		t.Errorf("overridden format should validate: %v", err)
	}
	if err := c.Log.Validate(); err != nil {
		t.Errorf("overridden log format should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "logfmt" }, true},
		{"markdown", func(c *Config) { c.Format = "md" }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mutate(&c)
			err := ValidateFormat(c.Format)
			if err == nil {
				err = c.Log.Validate()
			}
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLogConfig_ValidateIgnoresOutputFormat(t *testing.T) {
	c := Default()
	c.Format = "xml"
	if err := c.Log.Validate(); err != nil {
		t.Errorf("log settings are valid: %v", err)
	}
	if err := ValidateFormat(c.Format); err == nil {
		t.Error("ValidateFormat should reject xml")
	}
}
