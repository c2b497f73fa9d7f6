// Package validate checks generated dashboards and rules: every PromQL
// expression must parse, and every metric it selects should be one the
// service exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/property-search/tools/dashgen/rules"
)

// Result collects validation findings. Errors are unparseable expressions;
// warnings are references to metrics outside the known set.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there were no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Histogram and summary series carry these suffixes on top of the base name.
var seriesSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr validates a single PromQL expression found at location.
func (r *Result) Expr(location, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", location, err))
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !isKnown(vs.Name, known) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unknown metric %q", location, vs.Name))
		}
		return nil
	})
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range seriesSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// panelJSON mirrors the parts of the dashboard JSON model that hold queries.
type panelJSON struct {
	Title   string `json:"title"`
	Targets []struct {
		Expr string `json:"expr"`
	} `json:"targets"`
	Panels []panelJSON `json:"panels"`
}

// Dashboard validates every Prometheus target in dash, including panels
// nested in rows.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var r Result

	data, err := json.Marshal(dash)
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return r
	}

	var model struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &model); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return r
	}

	var walk func(panels []panelJSON)
	walk = func(panels []panelJSON) {
		for _, p := range panels {
			for i, t := range p.Targets {
				if t.Expr == "" {
					continue
				}
				r.Expr(fmt.Sprintf("panel %q target %d", p.Title, i), t.Expr, known)
			}
			walk(p.Panels)
		}
	}
	walk(model.Panels)

	return r
}

// Rules validates every rule expression in cr.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var r Result
	for _, g := range cr.Spec.Groups {
		for _, rule := range g.Rules {
			r.Expr(fmt.Sprintf("rule %s/%s", g.Name, rule.Name()), rule.Expr, known)
		}
	}
	return r
}
