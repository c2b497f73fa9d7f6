package main

import "errors"

// KnownMetrics is the set of metric names exported by property-search plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"psw_http_request_duration_seconds": true,
	"psw_http_requests_total":           true,

	// Health metrics.
	"psw_healthz_up": true,
	"psw_readyz_up":  true,

	// Search metrics.
	"psw_search_validation_failures_total": true,
	"psw_mock_mode_searches_total":         true,

	// Boom API metrics.
	"psw_boom_requests_total":            true,
	"psw_boom_request_duration_seconds":  true,
	"psw_boom_token_refreshes_total":     true,
	"psw_boom_token_invalidations_total": true,

	// Recording rules.
	"psw:http_requests:rate5m":       true,
	"psw:http_errors:rate5m":         true,
	"psw:search_rejections:rate5m":   true,
	"psw:boom_requests:rate5m":       true,
	"psw:boom_errors:rate5m":         true,
	"psw:boom_token_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
