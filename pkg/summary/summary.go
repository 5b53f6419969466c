// Package summary derives fleet-level aggregates from a generated
// observation set: the figures an operator checks before handing the
// dataset to the reporting pipeline.
package summary

import (
	"sort"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/simulate"
)

// TypeStats aggregates observations for one equipment type.
type TypeStats struct {
	Type          catalog.EquipmentType `json:"equipment_type"`
	Observations  int                   `json:"observations"`
	CriticalCount int                   `json:"critical_count"`
	MeanRisk      float64               `json:"mean_risk"`
	MaxRisk       float64               `json:"max_risk"`
}

// RegionStats aggregates critical observations for one region.
type RegionStats struct {
	Region        string `json:"region"`
	Observations  int    `json:"observations"`
	CriticalCount int    `json:"critical_count"`
}

// ActionCount is one bucket of the recommended-action histogram.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Fleet is the complete aggregate view of one generation run.
type Fleet struct {
	Rows          int           `json:"rows"`
	Assets        int           `json:"assets"`
	Months        int           `json:"months"`
	CriticalCount int           `json:"critical_count"`
	CriticalRate  float64       `json:"critical_rate"`
	MeanRisk      float64       `json:"mean_risk"`
	ByType        []TypeStats   `json:"by_type"`
	ByRegion      []RegionStats `json:"by_region"`
	Actions       []ActionCount `json:"actions"`
}

// Aggregate computes fleet statistics over an observation set. Type rows
// follow catalog order; region and action rows are sorted by name for
// stable output.
func Aggregate(observations []simulate.Observation) *Fleet {
	fleet := &Fleet{Rows: len(observations)}
	if len(observations) == 0 {
		return fleet
	}

	assets := map[string]bool{}
	months := map[string]bool{}
	typeIdx := map[catalog.EquipmentType]*TypeStats{}
	regionIdx := map[string]*RegionStats{}
	actions := map[string]int{}

	for _, p := range catalog.Profiles() {
		typeIdx[p.Type] = &TypeStats{Type: p.Type}
	}

	riskSum := 0.0
	for _, obs := range observations {
		assets[obs.AssetID] = true
		months[obs.Date.Format("2006-01")] = true
		riskSum += obs.RiskIndex
		actions[obs.Action]++

		ts, ok := typeIdx[obs.Type]
		if !ok {
			ts = &TypeStats{Type: obs.Type}
			typeIdx[obs.Type] = ts
		}
		ts.Observations++
		if obs.RiskIndex > ts.MaxRisk {
			ts.MaxRisk = obs.RiskIndex
		}
		ts.MeanRisk += obs.RiskIndex

		rs, ok := regionIdx[obs.Region]
		if !ok {
			rs = &RegionStats{Region: obs.Region}
			regionIdx[obs.Region] = rs
		}
		rs.Observations++

		if obs.Critical {
			fleet.CriticalCount++
			ts.CriticalCount++
			rs.CriticalCount++
		}
	}

	fleet.Assets = len(assets)
	fleet.Months = len(months)
	fleet.MeanRisk = riskSum / float64(len(observations))
	fleet.CriticalRate = float64(fleet.CriticalCount) / float64(len(observations))

	for _, p := range catalog.Profiles() {
		stats := typeIdx[p.Type]
		if stats.Observations > 0 {
			stats.MeanRisk /= float64(stats.Observations)
		}
		fleet.ByType = append(fleet.ByType, *stats)
		delete(typeIdx, p.Type)
	}
	// Types outside the catalog (should not happen, but keep them visible).
	for _, stats := range typeIdx {
		if stats.Observations > 0 {
			stats.MeanRisk /= float64(stats.Observations)
		}
		fleet.ByType = append(fleet.ByType, *stats)
	}

	for _, rs := range regionIdx {
		fleet.ByRegion = append(fleet.ByRegion, *rs)
	}
	sort.Slice(fleet.ByRegion, func(i, j int) bool {
		return fleet.ByRegion[i].Region < fleet.ByRegion[j].Region
	})

	for action, count := range actions {
		fleet.Actions = append(fleet.Actions, ActionCount{Action: action, Count: count})
	}
	sort.Slice(fleet.Actions, func(i, j int) bool {
		return fleet.Actions[i].Action < fleet.Actions[j].Action
	})

	return fleet
}
