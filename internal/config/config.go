package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	APIKey         string
	AllowedOrigins []string
	Provider       string
	Version        string
	Log            LogConfig
	FootballData   FootballDataConfig
	Fetch          FetchConfig
	Refresh        RefreshConfig
	Storage        StorageConfig
	Upload         UploadConfig
	OpenRouter     OpenRouterConfig
	SportMonks     SportMonksConfig
	Metrics        MetricsConfig
}

// LogConfig selects slog level and handler.
type LogConfig struct {
	Level  string
	Format string
}

// RefreshConfig drives the freshness gate, bucketing and the cron trigger.
// A zero Interval refreshes on every call; a zero Schedule disables the trigger.
type RefreshConfig struct {
	Interval        Duration
	Schedule        Duration
	MinOffset       int
	MaxOffset       int
	KeyStyle        string
	ExcludeInactive bool
}

// Load reads configuration from environment variables with sensible
// defaults. It fails only on values that are present but unparseable.
func Load() (Config, error) {
	var errs []error

	interval, err := optionalDurationEnv(envRefreshInterval, defaultRefreshInterval)
	errs = append(errs, err)
	schedule, err := optionalDurationEnv(envRefreshSchedule, 0)
	errs = append(errs, err)
	minOffset, err := signedIntEnv(envBucketMinOffset, defaultMinOffset)
	errs = append(errs, err)
	maxOffset, err := signedIntEnv(envBucketMaxOffset, defaultMaxOffset)
	errs = append(errs, err)
	upload, err := loadUpload()
	errs = append(errs, err)

	cfg := Config{
		Port:           envOrDefault(envPort, defaultPort),
		APIKey:         envOrDefault(envAPIKey, ""),
		AllowedOrigins: listEnv(envAllowedOrigins, defaultAllowedOrigins),
		Provider:       envOrDefault(envProvider, ProviderFootballData),
		Version:        envOrDefault(envVersion, defaultVersion),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		FootballData: loadFootballData(),
		Fetch:        loadFetch(),
		Refresh: RefreshConfig{
			Interval:        interval,
			Schedule:        schedule,
			MinOffset:       minOffset,
			MaxOffset:       maxOffset,
			KeyStyle:        envOrDefault(envBucketKeyStyle, "named"),
			ExcludeInactive: boolEnvOrDefault(envExcludeInactive, false),
		},
		Storage:    loadStorage(),
		Upload:     upload,
		OpenRouter: loadOpenRouter(),
		SportMonks: loadSportMonks(),
		Metrics:    loadMetrics(),
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing secret and unknown option at once.
func (c Config) Validate() error {
	var problems []string
	missing := func(key string) { problems = append(problems, key+" is required") }
	oneOf := func(key, val string, allowed ...string) {
		if !slices.Contains(allowed, val) {
			problems = append(problems, fmt.Sprintf("%s must be one of %s (got %q)", key, strings.Join(allowed, ", "), val))
		}
	}

	if c.APIKey == "" {
		missing(envAPIKey)
	}
	oneOf(envProvider, c.Provider, ProviderFootballData, ProviderFixture)
	if c.Provider == ProviderFootballData && c.FootballData.APIKey == "" {
		missing(envFootballDataKey)
	}
	oneOf(envFetchMode, c.Fetch.Mode, FetchSingle, FetchCompetition)
	if c.Fetch.Mode == FetchCompetition && len(c.Fetch.Competitions) == 0 {
		missing(envCompetitions)
	}
	oneOf(envBucketKeyStyle, c.Refresh.KeyStyle, "offset", "named", "date")
	if c.Refresh.MinOffset > c.Refresh.MaxOffset {
		problems = append(problems, fmt.Sprintf("%s (%d) must not exceed %s (%d)",
			envBucketMinOffset, c.Refresh.MinOffset, envBucketMaxOffset, c.Refresh.MaxOffset))
	}

	oneOf(envSnapshotBackend, c.Storage.Backend, BackendFirebase, BackendRedis, BackendFile, BackendMemory)
	oneOf(envLogSink, c.Storage.LogSink, SinkFirebase, SinkPostgres, SinkNone)
	if c.Storage.UsesFirebase() {
		if c.Storage.Firebase.DatabaseURL == "" {
			missing(envFirebaseURL)
		}
		if c.Storage.Firebase.Secret == "" {
			missing(envFirebaseSecret)
		}
	}
	if c.Storage.Backend == BackendRedis && c.Storage.RedisURL == "" {
		missing(envRedisURL)
	}
	if c.Storage.LogSink == SinkPostgres && c.Storage.DatabaseURL == "" {
		missing(envDatabaseURL)
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
