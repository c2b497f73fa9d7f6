package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ValidationFailures returns a timeseries panel showing rejected search
// requests by reason (missing_city, invalid_city, invalid_page).
func ValidationFailures() *timeseries.PanelBuilder {
	return lineChart("Rejected Searches", "Search requests rejected before reaching Boom, by reason", TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum by (reason) (rate(psw_search_validation_failures_total{job=%q}[5m]))`, Job),
			"{{reason}}", "A",
		)).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// RejectionShare returns a timeseries panel showing rejected searches as a
// percentage of all search requests.
func RejectionShare() *timeseries.PanelBuilder {
	return lineChart("Rejected %", "Share of search requests failing validation", TSWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(
				`psw:search_rejections:rate5m / sum(rate(psw_http_requests_total{job=%q,path="/api/v1/search"}[5m])) * 100`,
				Job,
			),
			"rejected %", "A",
		)).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(10, 25)).
		ColorScheme(ColorSchemeThresholds())
}
