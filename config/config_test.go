package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/audioscribe/logger"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name to follow config name, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	okLogging := logger.Config{Level: "info", Format: "json"}
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging", Logging: okLogging}, false, ""},
		{"missing name", ServiceConfig{Environment: "production", Logging: okLogging}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "qa", Logging: okLogging}, true, "config.environment must be one of"},
		{"invalid logging", ServiceConfig{Name: "svc", Environment: "staging", Logging: logger.Config{Level: "loud", Format: "json"}}, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Upstream      struct {
		APIKey  string        `mapstructure:"api_key"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"upstream"`
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: test-service
environment: staging
upstream:
  api_key: from-file
  timeout: 45s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var cfg testConfig
	if err := LoadConfig("test-service", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "test-service" {
		t.Errorf("expected name 'test-service', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Upstream.APIKey != "from-file" {
		t.Errorf("expected api key from file, got %q", cfg.Upstream.APIKey)
	}
	if cfg.Upstream.Timeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.Upstream.Timeout)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(configPath, []byte("name: svc\nupstream:\n  api_key: from-file\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("UPSTREAM_API_KEY", "from-env")

	var cfg testConfig
	if err := LoadConfig("svc", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "none.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Upstream.APIKey != "from-env" {
		t.Errorf("expected env override, got %q", cfg.Upstream.APIKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		filepath.Join(".", "cmd", "my-svc", "config.yml"): true,
		filepath.Join(".", ".env"):                        true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != filepath.Join("cmd", "my-svc", "config.yml") {
		t.Errorf("unexpected config file %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("unexpected env file %q", files.EnvFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("AUTH_USER_POOL_ID")
	want := []string{"auth_user_pool_id", "auth.user_pool_id", "auth.user.pool_id", "auth.user.pool.id"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("envKeyVariants() = %v, want %v", got, want)
	}
	if got := envKeyVariants("PORT"); !reflect.DeepEqual(got, []string{"port"}) {
		t.Errorf("single word key: got %v", got)
	}
}

func TestFallback(t *testing.T) {
	t.Setenv("LEGACY_KEY", "legacy")

	var empty string
	Fallback(&empty, "MISSING_KEY", "LEGACY_KEY")
	if empty != "legacy" {
		t.Errorf("expected fallback value, got %q", empty)
	}

	set := "explicit"
	Fallback(&set, "LEGACY_KEY")
	if set != "explicit" {
		t.Errorf("fallback must not override explicit value, got %q", set)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" https://a.example , ,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList() = %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Error("expected nil for empty input")
	}
}
