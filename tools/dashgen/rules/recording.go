package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "psw-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "psw-recording",
					Rules: []Rule{
						{
							Record: "psw:http_requests:rate5m",
							Expr:   `sum(rate(psw_http_requests_total[5m]))`,
						},
						{
							Record: "psw:http_errors:rate5m",
							Expr:   `sum(rate(psw_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "psw:search_rejections:rate5m",
							Expr:   `sum(rate(psw_search_validation_failures_total[5m]))`,
						},
						{
							Record: "psw:boom_requests:rate5m",
							Expr:   `sum(rate(psw_boom_requests_total[5m]))`,
						},
						{
							Record: "psw:boom_errors:rate5m",
							Expr:   `sum(rate(psw_boom_requests_total{outcome=~"unavailable|server_error|auth_error|unauthorized"}[5m]))`,
						},
						{
							Record: "psw:boom_token_failures:rate5m",
							Expr:   `sum(rate(psw_boom_token_refreshes_total{result="failure"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
