package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/property-search/tools/dashgen/dashboards"
	"github.com/donaldgifford/property-search/tools/dashgen/rules"
	"github.com/donaldgifford/property-search/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by tools/dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file, relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		dst := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(dst, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", dst)
	}
	return nil
}

func generate(cfg Config) ([]artifact, error) {
	var (
		out  []artifact
		errs []error
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building overview dashboard: %w", err)
		}
		result := validate.Dashboard(dash, KnownMetrics)
		errs = append(errs, findings(result)...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling overview dashboard: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("grafana", "data", "psw-overview.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		crs := []rules.PrometheusRule{rules.RecordingRules(), rules.AlertRules()}
		for _, cr := range crs {
			errs = append(errs, findings(validate.Rules(cr, KnownMetrics))...)

			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s: %w", cr.Metadata.Name, err)
			}
			out = append(out, artifact{
				path: filepath.Join("prometheus", cr.Metadata.Name+".yaml"),
				data: append([]byte(generatedHeader), data...),
			})
		}

		// Plain rules file for a Prometheus without the operator.
		data, err := yaml.Marshal(rules.Merge(crs...))
		if err != nil {
			return nil, fmt.Errorf("marshaling rules file: %w", err)
		}
		out = append(out, artifact{
			path: filepath.Join("prometheus", "rules", "psw.rules.yaml"),
			data: append([]byte(generatedHeader), data...),
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// findings turns validation errors and unknown-metric warnings into errors.
func findings(r validate.Result) []error {
	var errs []error
	for _, e := range r.Errors {
		errs = append(errs, errors.New(e))
	}
	for _, w := range r.Warnings {
		errs = append(errs, errors.New(w))
	}
	return errs
}
