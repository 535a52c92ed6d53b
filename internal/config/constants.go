package config

import "time"

const (
	envPort           = "PORT"
	envAPIKey         = "API_AUTH_KEY"
	envAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	envProvider       = "PROVIDER"
	envVersion        = "APP_VERSION"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"

	envFootballDataKey  = "FOOTBALL_DATA_API_KEY"
	envFootballDataURL  = "FOOTBALL_DATA_BASE_URL"
	envFetchMode        = "FETCH_MODE"
	envCompetitions     = "COMPETITIONS"
	envCompetitionDelay = "COMPETITION_DELAY"

	envRefreshInterval = "REFRESH_INTERVAL"
	envRefreshSchedule = "REFRESH_SCHEDULE"
	envBucketMinOffset = "BUCKET_MIN_OFFSET"
	envBucketMaxOffset = "BUCKET_MAX_OFFSET"
	envBucketKeyStyle  = "BUCKET_KEY_STYLE"
	envExcludeInactive = "EXCLUDE_INACTIVE"

	envSnapshotBackend = "SNAPSHOT_BACKEND"
	envSnapshotPath    = "SNAPSHOT_PATH"
	envFirebaseURL     = "FIREBASE_DATABASE_URL"
	envFirebaseSecret  = "FIREBASE_SECRET"
	envFirebaseRoot    = "FIREBASE_ROOT"
	envRedisURL        = "REDIS_URL"
	envRedisPrefix     = "REDIS_PREFIX"
	envLogSink         = "REFRESH_LOG_SINK"
	envDatabaseURL     = "DATABASE_URL"
	envLogTable        = "REFRESH_LOG_TABLE"

	envCatboxURL      = "CATBOX_URL"
	envCatboxUserHash = "CATBOX_USERHASH"
	envUploadMaxBytes = "UPLOAD_MAX_BYTES"

	envOpenRouterKey     = "OPENROUTER_API_KEY"
	envOpenRouterModel   = "OPENROUTER_MODEL"
	envOpenRouterURL     = "OPENROUTER_BASE_URL"
	envOpenRouterReferer = "OPENROUTER_REFERER"
	envSportMonksKey     = "SPORTMONKS_API_KEY"
	envSportMonksURL     = "SPORTMONKS_BASE_URL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort           = "4000"
	defaultAllowedOrigins = "https://tauraronwasa.pages.dev,https://www.tauraronwasa.com,https://leadwaypeace.pages.dev,http://localhost:8080"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultVersion        = "dev"

	defaultFootballDataURL  = "https://api.football-data.org/v4"
	defaultCompetitions     = "PL,PD,SA,BL1,FL1,CL"
	defaultCompetitionDelay = 3 * time.Second

	defaultRefreshInterval = 30 * time.Minute
	defaultMinOffset       = -2
	defaultMaxOffset       = 7

	defaultSnapshotPath = "data/snapshot.json"
	defaultRedisPrefix  = "fixtures"
	defaultLogTable     = "refresh_logs"

	defaultCatboxURL      = "https://catbox.moe/user/api.php"
	defaultUploadMaxBytes = 200 << 20

	defaultOpenRouterModel   = "openai/gpt-4o-mini"
	defaultOpenRouterURL     = "https://openrouter.ai/api/v1"
	defaultOpenRouterReferer = "https://tauraronwasa.pages.dev"
	defaultSportMonksURL     = "https://api.sportmonks.com/v3/football"

	defaultMetricsPort = "9090"
	defaultServiceName = "fixture-service"
)

// Provider names.
const (
	ProviderFootballData = "footballdata"
	ProviderFixture      = "fixture"
)

// Fetch modes.
const (
	FetchSingle      = "single"
	FetchCompetition = "competition"
)

// Snapshot backends.
const (
	BackendFirebase = "firebase"
	BackendRedis    = "redis"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

// Refresh log sinks.
const (
	SinkFirebase = "firebase"
	SinkPostgres = "postgres"
	SinkNone     = "none"
)
