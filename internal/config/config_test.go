package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envPort, envAPIKey, envAllowedOrigins, envProvider, envVersion, envLogLevel, envLogFormat,
		envFootballDataKey, envFootballDataURL, envFetchMode, envCompetitions, envCompetitionDelay,
		envRefreshInterval, envRefreshSchedule, envBucketMinOffset, envBucketMaxOffset, envBucketKeyStyle, envExcludeInactive,
		envSnapshotBackend, envSnapshotPath, envFirebaseURL, envFirebaseSecret, envFirebaseRoot,
		envRedisURL, envRedisPrefix, envLogSink, envDatabaseURL, envLogTable,
		envCatboxURL, envCatboxUserHash, envUploadMaxBytes,
		envOpenRouterKey, envOpenRouterModel, envOpenRouterURL, envOpenRouterReferer, envSportMonksKey, envSportMonksURL,
		envMetricsPort, envMetricsOn, envOtelEndpoint, envOtelService, envOtelInsecure,
	} {
		t.Setenv(key, "")
	}
}

func validEnv(t *testing.T) {
	t.Helper()
	clearEnv(t)
	t.Setenv(envAPIKey, "@secret")
	t.Setenv(envFootballDataKey, "fd-token")
	t.Setenv(envFirebaseURL, "https://tauraronwasa-default-rtdb.firebaseio.com")
	t.Setenv(envFirebaseSecret, "db-secret")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Provider != ProviderFootballData || cfg.Fetch.Mode != FetchSingle {
		t.Fatalf("unexpected provider/mode %s/%s", cfg.Provider, cfg.Fetch.Mode)
	}
	if cfg.FootballData.BaseURL != defaultFootballDataURL {
		t.Fatalf("expected default base url, got %s", cfg.FootballData.BaseURL)
	}
	if got := strings.Join(cfg.Fetch.Competitions, ","); got != defaultCompetitions {
		t.Fatalf("expected default competitions, got %s", got)
	}
	if cfg.Fetch.Delay != 3*time.Second {
		t.Fatalf("expected 3s delay, got %s", cfg.Fetch.Delay)
	}
	if cfg.Refresh.Interval != 30*time.Minute || cfg.Refresh.Schedule != 0 {
		t.Fatalf("unexpected refresh timings %+v", cfg.Refresh)
	}
	if cfg.Refresh.MinOffset != -2 || cfg.Refresh.MaxOffset != 7 || cfg.Refresh.KeyStyle != "named" {
		t.Fatalf("unexpected bucket defaults %+v", cfg.Refresh)
	}
	if cfg.Storage.Backend != BackendFirebase || cfg.Storage.LogSink != SinkFirebase {
		t.Fatalf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Upload.MaxBytes != 200<<20 {
		t.Fatalf("expected 200MB upload cap, got %d", cfg.Upload.MaxBytes)
	}
	if len(cfg.AllowedOrigins) != 4 {
		t.Fatalf("expected default origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.OpenRouter.Model != defaultOpenRouterModel {
		t.Fatalf("expected default model, got %s", cfg.OpenRouter.Model)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected default service name, got %s", cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envPort, "5000")
	t.Setenv(envFetchMode, FetchCompetition)
	t.Setenv(envCompetitions, " PL, CL ,,")
	t.Setenv(envCompetitionDelay, "500ms")
	t.Setenv(envRefreshInterval, "0")
	t.Setenv(envRefreshSchedule, "15m")
	t.Setenv(envBucketMinOffset, "-1")
	t.Setenv(envBucketMaxOffset, "3")
	t.Setenv(envBucketKeyStyle, "offset")
	t.Setenv(envExcludeInactive, "true")
	t.Setenv(envSnapshotBackend, BackendRedis)
	t.Setenv(envUploadMaxBytes, "512kb")
	t.Setenv(envAllowedOrigins, "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if got := strings.Join(cfg.Fetch.Competitions, ","); got != "PL,CL" {
		t.Fatalf("expected trimmed competitions, got %q", got)
	}
	if cfg.Fetch.Delay != 500*time.Millisecond {
		t.Fatalf("expected 500ms delay, got %s", cfg.Fetch.Delay)
	}
	if cfg.Refresh.Interval != 0 || cfg.Refresh.Schedule != 15*time.Minute {
		t.Fatalf("unexpected refresh timings %+v", cfg.Refresh)
	}
	if cfg.Refresh.MinOffset != -1 || cfg.Refresh.MaxOffset != 3 || cfg.Refresh.KeyStyle != "offset" || !cfg.Refresh.ExcludeInactive {
		t.Fatalf("unexpected bucket overrides %+v", cfg.Refresh)
	}
	if cfg.Storage.Backend != BackendRedis {
		t.Fatalf("expected redis backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Upload.MaxBytes != 512<<10 {
		t.Fatalf("expected 512KB cap, got %d", cfg.Upload.MaxBytes)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsUnparseableValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(envRefreshInterval, "soon")
	t.Setenv(envBucketMinOffset, "minus two")
	t.Setenv(envUploadMaxBytes, "lots")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, key := range []string{envRefreshInterval, envBucketMinOffset, envUploadMaxBytes} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestLoadInvalidDelayFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCompetitionDelay, "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Fetch.Delay != defaultCompetitionDelay {
		t.Fatalf("expected default delay on non-positive value, got %s", cfg.Fetch.Delay)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateNamesEveryMissingSecret(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	err = cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, key := range []string{envAPIKey, envFootballDataKey, envFirebaseURL, envFirebaseSecret} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected error to mention %s, got %v", key, err)
		}
	}
}

func TestValidateFixtureProviderNeedsNoToken(t *testing.T) {
	validEnv(t)
	t.Setenv(envFootballDataKey, "")
	t.Setenv(envProvider, ProviderFixture)

	cfg, _ := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected fixture provider to run without token, got %v", err)
	}
}

func TestValidateBackendRequirements(t *testing.T) {
	validEnv(t)
	t.Setenv(envSnapshotBackend, BackendRedis)
	t.Setenv(envLogSink, SinkPostgres)

	cfg, _ := Load()
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), envRedisURL) || !strings.Contains(err.Error(), envDatabaseURL) {
		t.Fatalf("expected redis and database requirements, got %v", err)
	}
	if cfg.Storage.UsesFirebase() {
		t.Fatalf("expected firebase unused for redis+postgres")
	}
}

func TestValidateRejectsUnknownOptions(t *testing.T) {
	validEnv(t)
	t.Setenv(envFetchMode, "parallel")
	t.Setenv(envBucketKeyStyle, "weekday")
	t.Setenv(envBucketMinOffset, "4")
	t.Setenv(envBucketMaxOffset, "1")

	cfg, _ := Load()
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{envFetchMode, envBucketKeyStyle, envBucketMinOffset} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to mention %s, got %v", want, err)
		}
	}
}
