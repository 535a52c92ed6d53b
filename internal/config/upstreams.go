package config

// FootballDataConfig controls how we talk to football-data.org.
type FootballDataConfig struct {
	BaseURL string
	APIKey  string
}

// FetchConfig picks the fetch strategy for a refresh cycle.
type FetchConfig struct {
	Mode         string
	Competitions []string
	Delay        Duration
}

// UploadConfig controls the file host relay.
type UploadConfig struct {
	CatboxURL string
	UserHash  string
	MaxBytes  int64
}

// OpenRouterConfig is optional; an empty key disables AI endpoints.
type OpenRouterConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Referer string
}

// SportMonksConfig is optional; an empty key disables livescores.
type SportMonksConfig struct {
	BaseURL string
	APIKey  string
}

func loadFootballData() FootballDataConfig {
	return FootballDataConfig{
		BaseURL: envOrDefault(envFootballDataURL, defaultFootballDataURL),
		APIKey:  envOrDefault(envFootballDataKey, ""),
	}
}

func loadFetch() FetchConfig {
	return FetchConfig{
		Mode:         envOrDefault(envFetchMode, FetchSingle),
		Competitions: listEnv(envCompetitions, defaultCompetitions),
		Delay:        durationEnvOrDefault(envCompetitionDelay, defaultCompetitionDelay),
	}
}

func loadUpload() (UploadConfig, error) {
	maxBytes, err := bytesEnv(envUploadMaxBytes, defaultUploadMaxBytes)
	if err != nil {
		return UploadConfig{}, err
	}
	return UploadConfig{
		CatboxURL: envOrDefault(envCatboxURL, defaultCatboxURL),
		UserHash:  envOrDefault(envCatboxUserHash, ""),
		MaxBytes:  maxBytes,
	}, nil
}

func loadOpenRouter() OpenRouterConfig {
	return OpenRouterConfig{
		BaseURL: envOrDefault(envOpenRouterURL, defaultOpenRouterURL),
		APIKey:  envOrDefault(envOpenRouterKey, ""),
		Model:   envOrDefault(envOpenRouterModel, defaultOpenRouterModel),
		Referer: envOrDefault(envOpenRouterReferer, defaultOpenRouterReferer),
	}
}

func loadSportMonks() SportMonksConfig {
	return SportMonksConfig{
		BaseURL: envOrDefault(envSportMonksURL, defaultSportMonksURL),
		APIKey:  envOrDefault(envSportMonksKey, ""),
	}
}
