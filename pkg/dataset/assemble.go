// Package dataset drives the asset-by-month cross product and emits the two
// flat tables consumed by the reporting pipeline. Months are the outer loop
// and assets the inner loop; together with the registry build this fixes the
// order in which the seeded stream is consumed, so the nesting is a
// reproducibility contract, not a style choice.
package dataset

import (
	"fmt"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/registry"
	"github.com/gridwatch/riskgen/pkg/rng"
	"github.com/gridwatch/riskgen/pkg/scenario"
	"github.com/gridwatch/riskgen/pkg/simulate"
)

// Tables is the complete output of one generation run.
type Tables struct {
	Observations []simulate.Observation
	Thresholds   []catalog.ThresholdRow
	Assets       []registry.Asset
	MonthCount   int
}

// Generate runs the full pipeline for one scenario: validate, build the
// registry, then simulate every asset for every month. No file is touched
// here; Write emits the result afterwards.
func Generate(sc scenario.Scenario) (*Tables, error) {
	if report := sc.Validate(); !report.Valid {
		return nil, fmt.Errorf("invalid scenario: %s", report.Summary)
	}
	if report := catalog.Validate(catalog.Profiles()); !report.Valid {
		return nil, fmt.Errorf("invalid catalog: %s", report.Summary)
	}

	months, err := sc.MonthRange()
	if err != nil {
		return nil, fmt.Errorf("expanding month range: %w", err)
	}

	stream := rng.New(sc.Seed)
	assets := registry.Build(catalog.Profiles(), stream)

	observations := make([]simulate.Observation, 0, len(months)*len(assets))
	for monthIdx, month := range months {
		for _, asset := range assets {
			observations = append(observations, simulate.Monthly(asset, monthIdx, month, stream))
		}
	}

	return &Tables{
		Observations: observations,
		Thresholds:   catalog.Thresholds(),
		Assets:       assets,
		MonthCount:   len(months),
	}, nil
}
