package model

import "time"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default solver settings applied to every run
	DefaultMode           Mode   `json:"default_mode"`
	DefaultSymmetry       bool   `json:"default_symmetry_breaking"`
	DefaultRegionPruning  bool   `json:"default_region_pruning"`
	DefaultMaxSteps       int64  `json:"default_max_steps"`
	DefaultQueryTimeoutMS int64  `json:"default_query_timeout_ms"` // 0 = disabled
	DefaultWorkers        int    `json:"default_workers"`
	DefaultProfile        string `json:"default_profile"`

	// Application preferences
	LogLevel     string   `json:"log_level"`  // "debug", "info", "warn", "error"
	LogFormat    string   `json:"log_format"` // "console" or "json"
	RecentInputs []string `json:"recent_inputs"`
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:           defaults.Mode,
		DefaultSymmetry:       defaults.SymmetryBreaking,
		DefaultRegionPruning:  defaults.RegionPruning,
		DefaultMaxSteps:       defaults.MaxSteps,
		DefaultQueryTimeoutMS: defaults.QueryTimeout.Milliseconds(),
		DefaultWorkers:        defaults.Workers,
		DefaultProfile:        "default",
		LogLevel:              "info",
		LogFormat:             "console",
		RecentInputs:          []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a SolverSettings struct.
func (c AppConfig) ApplyToSettings(s *SolverSettings) {
	if c.DefaultMode != "" {
		s.Mode = c.DefaultMode
	}
	s.SymmetryBreaking = c.DefaultSymmetry
	s.RegionPruning = c.DefaultRegionPruning
	s.MaxSteps = c.DefaultMaxSteps
	s.QueryTimeout = time.Duration(c.DefaultQueryTimeoutMS) * time.Millisecond
	if c.DefaultWorkers > 0 {
		s.Workers = c.DefaultWorkers
	}
}

// AddRecentInput moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentInput(path string, limit int) {
	list := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			list = append(list, p)
		}
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	c.RecentInputs = list
}
