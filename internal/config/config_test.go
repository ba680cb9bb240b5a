package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port

		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d: expected error", port)
		}
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "valkey"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}

	expected := `storage.driver must be "file" or "redis", got "valkey"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = DriverRedis
	cfg.Storage.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MissingFilePath(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Path = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing file path")
	}
}

func TestValidate_PageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.Query.DefaultPageSize = 50
	cfg.Query.MaxPageSize = 10

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "max_page_size") {
		t.Fatalf("expected max_page_size error, got %v", err)
	}

	cfg = validConfig()
	cfg.Query.DefaultRelatedLimit = 60

	err = cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "max_related_limit") {
		t.Fatalf("expected max_related_limit error, got %v", err)
	}
}

func TestValidate_TinyBodyLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Limits.MaxBodyBytes = 10

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny body limit")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("expected Driver=file, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "data.json" {
		t.Errorf("expected Path=data.json, got %q", cfg.Storage.Path)
	}
	if cfg.Storage.Key != "catalog:items" {
		t.Errorf("expected Key='catalog:items', got %q", cfg.Storage.Key)
	}
	if cfg.Storage.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Storage.ReadinessTimeout)
	}
	if cfg.Seed.SampleSize != 1000 {
		t.Errorf("expected SampleSize=1000, got %d", cfg.Seed.SampleSize)
	}
	if cfg.Seed.RandomSeed != 42 {
		t.Errorf("expected RandomSeed=42, got %d", cfg.Seed.RandomSeed)
	}
	if cfg.Query.DefaultPageSize != 25 {
		t.Errorf("expected DefaultPageSize=25, got %d", cfg.Query.DefaultPageSize)
	}
	if cfg.Query.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Query.MaxPageSize)
	}
	if cfg.Query.DefaultRelatedLimit != 5 {
		t.Errorf("expected DefaultRelatedLimit=5, got %d", cfg.Query.DefaultRelatedLimit)
	}
	if cfg.Query.MaxRelatedLimit != 50 {
		t.Errorf("expected MaxRelatedLimit=50, got %d", cfg.Query.MaxRelatedLimit)
	}
	if cfg.Limits.CreateRPS != 50 {
		t.Errorf("expected CreateRPS=50, got %g", cfg.Limits.CreateRPS)
	}
	if cfg.Limits.CreateBurst != 100 {
		t.Errorf("expected CreateBurst=100, got %d", cfg.Limits.CreateBurst)
	}
	if cfg.Limits.MaxBodyBytes != 1<<20 {
		t.Errorf("expected MaxBodyBytes=1MiB, got %d", cfg.Limits.MaxBodyBytes)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Storage: StorageConfig{Driver: DriverRedis, Key: "custom:items", ReadinessTimeout: 15},
		Query:   QueryConfig{DefaultPageSize: 10, MaxPageSize: 500},
		Limits:  LimitsConfig{CreateRPS: -1},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Storage.Key != "custom:items" {
		t.Errorf("expected Key='custom:items', got %q", cfg.Storage.Key)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("redis driver should not get a default path, got %q", cfg.Storage.Path)
	}
	if cfg.Query.DefaultPageSize != 10 || cfg.Query.MaxPageSize != 500 {
		t.Errorf("page sizes overridden: %+v", cfg.Query)
	}
	if cfg.Limits.CreateRPS != -1 {
		t.Errorf("expected CreateRPS=-1 to disable throttling, got %g", cfg.Limits.CreateRPS)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CATALOG_TEST_ADDR", "redis:6380")

	tests := []struct {
		in   string
		want string
	}{
		{"addr: ${CATALOG_TEST_ADDR}", "addr: redis:6380"},
		{"addr: ${CATALOG_TEST_ADDR:-fallback}", "addr: redis:6380"},
		{"addr: ${CATALOG_TEST_UNSET:-fallback}", "addr: fallback"},
		{"addr: ${CATALOG_TEST_UNSET}", "addr: "},
		{"plain: value", "plain: value"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_Local(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DATA_PATH", "/tmp/catalog-test.json")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("expected file driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "/tmp/catalog-test.json" {
		t.Errorf("expected path from env, got %q", cfg.Storage.Path)
	}
	if cfg.Seed.SampleSize != 1000 {
		t.Errorf("expected sample size 1000, got %d", cfg.Seed.SampleSize)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
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
