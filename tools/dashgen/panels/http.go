package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the HTTP request rate.
func RequestRate() *timeseries.PanelBuilder {
	return lineChart("Request Rate", "HTTP requests per second", ThirdWidth).
		WithTarget(PromQuery(`psw:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// LatencyPercentiles returns a timeseries panel showing p50, p95, and p99
// latencies of the search endpoint.
func LatencyPercentiles() *timeseries.PanelBuilder {
	quantile := func(q string) string {
		return fmt.Sprintf(
			`histogram_quantile(%s, sum(rate(psw_http_request_duration_seconds_bucket{job=%q,path="/api/v1/search"}[5m])) by (le))`,
			q, Job,
		)
	}
	return lineChart("Search Latency", "Search endpoint duration percentiles, upstream call included", ThirdWidth).
		WithTarget(PromQuery(quantile("0.50"), "p50", "A")).
		WithTarget(PromQuery(quantile("0.95"), "p95", "B")).
		WithTarget(PromQuery(quantile("0.99"), "p99", "C")).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// ErrorRate returns a timeseries panel showing the HTTP 5xx error rate
// as a percentage.
func ErrorRate() *timeseries.PanelBuilder {
	return lineChart("Error Rate %", "HTTP 5xx error rate as percentage of total requests", ThirdWidth).
		WithTarget(PromQuery(
			`psw:http_errors:rate5m / psw:http_requests:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds())
}
