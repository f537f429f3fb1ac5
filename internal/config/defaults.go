package config

// DefaultBaseURL is the public report service endpoint.
const DefaultBaseURL = "https://exam-wsta.onrender.com"

// DefaultConfig returns configuration with sensible defaults. These are
// used when no config file exists or when fields are missing from it.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Feed: FeedConfig{
			WindowDays:  7,
			PageSize:    5,
			TopCenters:  5,
			MatchFields: []string{"examName", "centerName"},
			Tags:        []string{"NEET", "JEE", "CUET"},
		},
		Dashboard: DashboardConfig{
			PageSize: 6,
		},
		Media: MediaConfig{
			ImageExts: []string{"jpg", "jpeg", "png"},
			VideoExts: []string{"mp4", "mov", "avi"},
		},
	}
}

// Merge merges loaded config with defaults. Values from the loaded
// config take precedence. Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.API = mergeAPIConfig(loaded.API, defaults.API)
	result.Feed = mergeFeedConfig(loaded.Feed, defaults.Feed)
	result.Dashboard = mergeDashboardConfig(loaded.Dashboard, defaults.Dashboard)
	result.Media = mergeMediaConfig(loaded.Media, defaults.Media)

	return result
}

func mergeAPIConfig(loaded, defaults APIConfig) APIConfig {
	result := APIConfig{}

	if loaded.BaseURL != "" {
		result.BaseURL = loaded.BaseURL
	} else {
		result.BaseURL = defaults.BaseURL
	}

	return result
}

func mergeFeedConfig(loaded, defaults FeedConfig) FeedConfig {
	result := FeedConfig{}

	if loaded.WindowDays != 0 {
		result.WindowDays = loaded.WindowDays
	} else {
		result.WindowDays = defaults.WindowDays
	}

	if loaded.PageSize != 0 {
		result.PageSize = loaded.PageSize
	} else {
		result.PageSize = defaults.PageSize
	}

	if loaded.TopCenters != 0 {
		result.TopCenters = loaded.TopCenters
	} else {
		result.TopCenters = defaults.TopCenters
	}

	if len(loaded.MatchFields) > 0 {
		result.MatchFields = loaded.MatchFields
	} else {
		result.MatchFields = defaults.MatchFields
	}

	if len(loaded.Tags) > 0 {
		result.Tags = loaded.Tags
	} else {
		result.Tags = defaults.Tags
	}

	return result
}

func mergeDashboardConfig(loaded, defaults DashboardConfig) DashboardConfig {
	result := DashboardConfig{}

	if loaded.PageSize != 0 {
		result.PageSize = loaded.PageSize
	} else {
		result.PageSize = defaults.PageSize
	}

	return result
}

func mergeMediaConfig(loaded, defaults MediaConfig) MediaConfig {
	result := MediaConfig{}

	if len(loaded.ImageExts) > 0 {
		result.ImageExts = loaded.ImageExts
	} else {
		result.ImageExts = defaults.ImageExts
	}

	if len(loaded.VideoExts) > 0 {
		result.VideoExts = loaded.VideoExts
	} else {
		result.VideoExts = defaults.VideoExts
	}

	return result
}
