package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Embedding: EmbeddingConfig{
			Model:  "text-embedding-3-small",
			APIKey: "test-key",
		},
		Auth: AuthConfig{IngestSecret: "secret"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected read timeout default 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected provider default openai, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("expected dimensions default 1024, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.CacheTTLHours != 720 {
		t.Errorf("expected cache TTL default 720h, got %d", cfg.Embedding.CacheTTLHours)
	}
	if cfg.Index.HNSWM != 32 || cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("unexpected HNSW defaults: %+v", cfg.Index)
	}
}

func TestApplyDefaults_KeepsExplicit(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 768
	cfg.Index.HNSWM = 16
	cfg.ApplyDefaults()

	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("explicit dimensions overwritten: %d", cfg.Embedding.Dimensions)
	}
	if cfg.Index.HNSWM != 16 {
		t.Errorf("explicit HNSW M overwritten: %d", cfg.Index.HNSWM)
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }},
		{"no addrs", func(c *Config) { c.Database.Addrs = nil }},
		{"no model", func(c *Config) { c.Embedding.Model = "" }},
		{"no ingest secret", func(c *Config) { c.Auth.IngestSecret = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_SECRET", "s3cret")
	os.Unsetenv("TEST_ABSENT")

	in := []byte("secret: ${TEST_SECRET}\nfallback: ${TEST_ABSENT:-default-val}\nempty: ${TEST_ABSENT}\n")
	out := string(expandEnvVars(in))

	want := "secret: s3cret\nfallback: default-val\nempty: \n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(dir+"/config", 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := `
http:
  port: 9090
database:
  addrs:
    - localhost:6379
embedding:
  model: text-embedding-3-small
  api_key: ${TEST_API_KEY}
auth:
  ingest_secret: ${TEST_INGEST_SECRET:-fallback-secret}
`
	if err := os.WriteFile(dir+"/config/test.yaml", []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TEST_API_KEY", "the-key")
	os.Unsetenv("TEST_INGEST_SECRET")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("unexpected port: %d", cfg.HTTP.Port)
	}
	if cfg.Embedding.APIKey != "the-key" {
		t.Errorf("env var not substituted: %q", cfg.Embedding.APIKey)
	}
	if cfg.Auth.IngestSecret != "fallback-secret" {
		t.Errorf("default not applied: %q", cfg.Auth.IngestSecret)
	}
	// Defaults applied during load.
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("defaults not applied: %d", cfg.Embedding.Dimensions)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	if _, err := Load("nonexistent"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
