package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/specialistvlad/caregrid/internal/ctxlog"
	"github.com/specialistvlad/caregrid/internal/localrun"
	"github.com/specialistvlad/caregrid/internal/nodeid"
	"github.com/specialistvlad/caregrid/internal/synth"
	"github.com/specialistvlad/caregrid/internal/token"
	"github.com/specialistvlad/caregrid/internal/topology"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Synth assembles the platform and writes the encoded descriptor.
func (a *App) Synth(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Synth started.", "format", a.config.Format)

	store, _, err := a.assemble(ctx)
	if err != nil {
		return err
	}
	d, err := synth.Build(ctx, store)
	if err != nil {
		return err
	}
	format, err := synth.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	out, err := synth.Encode(d, format)
	if err != nil {
		return fmt.Errorf("failed to encode descriptor: %w", err)
	}

	a.logger.Info("Descriptor synthesized.", "resources", len(d.Resources), "digest", d.Digest)
	return a.write(ctx, out)
}

// Validate assembles the platform and re-checks the result against the
// requirement table and the reference rules, printing a short summary.
func (a *App) Validate(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Validate started.")

	store, _, err := a.assemble(ctx)
	if err != nil {
		return err
	}
	edges := store.Edges(ctx)
	if err := topology.Verify(edges, topology.PlatformRequirements()); err != nil {
		return err
	}
	if err := topology.CheckReferences(ctx, store); err != nil {
		return err
	}

	summary := fmt.Sprintf("topology is valid: %d resources, %d edges, %d requirement rows\n",
		len(store.AllNodes(ctx)), len(edges), len(topology.PlatformRequirements()))
	return a.write(ctx, []byte(summary))
}

// Plan prints the realization waves: every resource in a wave only depends
// on resources of earlier waves.
func (a *App) Plan(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Plan started.")

	store, _, err := a.assemble(ctx)
	if err != nil {
		return err
	}
	waves, err := store.Waves(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, wave := range waves {
		fmt.Fprintf(&b, "wave %d:\n", i)
		for _, addr := range wave {
			fmt.Fprintf(&b, "  %s\n", addr)
		}
	}
	return a.write(ctx, []byte(b.String()))
}

// Containers renders every workload into container create options, using
// the materialized values read from ValuesPath.
func (a *App) Containers(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Containers started.", "values", a.config.ValuesPath)

	vals, err := loadValues(a.config.ValuesPath)
	if err != nil {
		return err
	}
	store, _, err := a.assemble(ctx)
	if err != nil {
		return err
	}
	nodes, err := store.Order(ctx)
	if err != nil {
		return err
	}

	var specs []*localrun.Spec
	for _, n := range nodes {
		if n.Kind() != nodeid.KindWorkload {
			continue
		}
		spec, err := localrun.ContainerSpec(n, vals)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	out, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return err
	}
	a.logger.Info("Container specs rendered.", "count", len(specs))
	return a.write(ctx, append(out, '\n'))
}

// loadValues reads a flat mapping of reference expressions to values, for
// example `database.auth-service-db.endpoint_port: 5432`. An empty path
// yields no values.
func loadValues(path string) (token.Values, error) {
	vals := token.Values{}
	if path == "" {
		return vals, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse values %s: %w", path, err)
	}

	for expr, v := range doc {
		ref, err := token.ParseRef(expr)
		if err != nil {
			return nil, fmt.Errorf("values %s: %w", path, err)
		}
		switch tv := v.(type) {
		case string:
			vals[ref] = cty.StringVal(tv)
		case int:
			vals[ref] = cty.NumberIntVal(int64(tv))
		case float64:
			vals[ref] = cty.NumberFloatVal(tv)
		case bool:
			vals[ref] = cty.BoolVal(tv)
		default:
			return nil, fmt.Errorf("values %s: %s must be a string, number or bool", path, expr)
		}
	}
	return vals, nil
}
