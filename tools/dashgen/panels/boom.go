package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UpstreamOutcomes returns a timeseries panel showing Boom listings requests
// per second, split by outcome.
func UpstreamOutcomes() *timeseries.PanelBuilder {
	return lineChart("Boom Requests", "Boom listings requests per second by outcome", ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum by (outcome) (rate(psw_boom_requests_total{job=%q}[5m]))`, Job),
			"{{outcome}}", "A",
		)).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// UpstreamLatency returns a timeseries panel showing p95 Boom listings
// request latency.
func UpstreamLatency() *timeseries.PanelBuilder {
	return lineChart("Boom Latency (p95)", "95th percentile Boom listings request duration", ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(
				`histogram_quantile(0.95, sum(rate(psw_boom_request_duration_seconds_bucket{job=%q}[5m])) by (le))`,
				Job,
			),
			"p95", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic())
}

// TokenActivity returns a stat panel showing Boom token refreshes and
// invalidations over the last 24 hours.
func TokenActivity() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Activity (24h)").
		Description("Boom access token refreshes by result and invalidations by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum by (result) (increase(psw_boom_token_refreshes_total{job=%q}[24h]))`, Job),
			"refresh {{result}}", "A",
		)).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum by (reason) (increase(psw_boom_token_invalidations_total{job=%q}[24h]))`, Job),
			"invalidated {{reason}}", "B",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeArea)
}
