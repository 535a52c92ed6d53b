package config

// StorageConfig selects where snapshots and refresh log entries live.
type StorageConfig struct {
	Backend      string
	SnapshotPath string
	RedisURL     string
	RedisPrefix  string
	LogSink      string
	DatabaseURL  string
	LogTable     string
	Firebase     FirebaseConfig
}

// FirebaseConfig addresses a Realtime Database over REST.
type FirebaseConfig struct {
	DatabaseURL string
	Secret      string
	Root        string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		Backend:      envOrDefault(envSnapshotBackend, BackendFirebase),
		SnapshotPath: envOrDefault(envSnapshotPath, defaultSnapshotPath),
		RedisURL:     envOrDefault(envRedisURL, ""),
		RedisPrefix:  envOrDefault(envRedisPrefix, defaultRedisPrefix),
		LogSink:      envOrDefault(envLogSink, SinkFirebase),
		DatabaseURL:  envOrDefault(envDatabaseURL, ""),
		LogTable:     envOrDefault(envLogTable, defaultLogTable),
		Firebase: FirebaseConfig{
			DatabaseURL: envOrDefault(envFirebaseURL, ""),
			Secret:      envOrDefault(envFirebaseSecret, ""),
			Root:        envOrDefault(envFirebaseRoot, ""),
		},
	}
}

// UsesFirebase reports whether any component needs the RTDB client.
func (s StorageConfig) UsesFirebase() bool {
	return s.Backend == BackendFirebase || s.LogSink == SinkFirebase
}
