package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// property-search operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "psw-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "psw-alerts",
					Rules: []Rule{
						{
							Alert: "PswDown",
							Expr:  `absent(up{job="property-search"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Property Search API is down",
								"description": "The property-search job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "PswReadinessDown",
							Expr:  `psw_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Property Search readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "PswHighErrorRate",
							Expr:  `psw:http_errors:rate5m / psw:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Property Search",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "PswBoomErrors",
							Expr:  `psw:boom_errors:rate5m / psw:boom_requests:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Boom listings requests are failing",
								"description": "More than 10% of Boom listings requests failed over the last 5 minutes.",
							},
						},
						{
							Alert: "PswBoomAuthFailing",
							Expr:  `psw:boom_token_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Boom authentication is failing",
								"description": "Token requests to the Boom API have been failing for more than 5 minutes.",
							},
						},
						{
							Alert: "PswMockMode",
							Expr:  `increase(psw_mock_mode_searches_total[15m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Searches are answered in mock mode",
								"description": "Boom credentials are not configured; searches return an empty mock result.",
							},
						},
					},
				},
			},
		},
	}
}
