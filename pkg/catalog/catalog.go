// Package catalog defines the fixed equipment population for the
// distribution fleet: one profile per equipment type, the regions and
// circuit identifiers assets are placed on, and the per-type risk
// thresholds. The set of equipment types is closed; adding a type means
// adding a profile here, not configuration.
package catalog

import (
	"fmt"

	"github.com/gridwatch/riskgen/pkg/validation"
)

// EquipmentType identifies one of the supported distribution asset classes.
type EquipmentType string

const (
	OverheadLine EquipmentType = "Overhead Line"
	Insulator    EquipmentType = "Insulator"
	Arrester     EquipmentType = "Arrester"
)

// Profile holds the per-type population and risk parameters.
type Profile struct {
	Type               EquipmentType
	Prefix             string
	Count              int
	BaseConsequence    float64
	WarningThreshold   int
	CriticalThreshold  int
	EmergencyThreshold int
	LoadMinA           float64
	LoadMaxA           float64
}

// ThresholdRow is one row of the emitted threshold table.
type ThresholdRow struct {
	Type      EquipmentType
	Warning   int
	Critical  int
	Emergency int
}

// Region is a service area with a geographic center for asset placement.
type Region struct {
	Name      string
	CenterLat float64
	CenterLon float64
}

var profiles = []Profile{
	{
		Type:               OverheadLine,
		Prefix:             "OHL",
		Count:              24,
		BaseConsequence:    78,
		WarningThreshold:   65,
		CriticalThreshold:  75,
		EmergencyThreshold: 88,
		LoadMinA:           120,
		LoadMaxA:           260,
	},
	{
		Type:               Insulator,
		Prefix:             "INS",
		Count:              20,
		BaseConsequence:    68,
		WarningThreshold:   60,
		CriticalThreshold:  70,
		EmergencyThreshold: 85,
		LoadMinA:           90,
		LoadMaxA:           220,
	},
	{
		Type:               Arrester,
		Prefix:             "ARR",
		Count:              16,
		BaseConsequence:    72,
		WarningThreshold:   62,
		CriticalThreshold:  72,
		EmergencyThreshold: 86,
		LoadMinA:           100,
		LoadMaxA:           240,
	},
}

var regions = []Region{
	{Name: "North", CenterLat: 25.0780, CenterLon: 121.2320},
	{Name: "Central", CenterLat: 24.1410, CenterLon: 120.6720},
	{Name: "South", CenterLat: 22.6270, CenterLon: 120.3010},
}

var feeders = []string{"A LINE", "B LINE", "C LINE", "D LINE"}

var poles = []string{"P1", "P2", "P3", "P4", "P5", "P6"}

// Profiles returns the equipment profiles in catalog-declared order. The
// order is part of the reproducibility contract: the registry builder
// iterates profiles in this exact sequence.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ProfileFor returns the profile for the given equipment type.
func ProfileFor(t EquipmentType) (Profile, bool) {
	for _, p := range profiles {
		if p.Type == t {
			return p, true
		}
	}
	return Profile{}, false
}

// Thresholds returns one threshold row per equipment type, in catalog order.
func Thresholds() []ThresholdRow {
	rows := make([]ThresholdRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, ThresholdRow{
			Type:      p.Type,
			Warning:   p.WarningThreshold,
			Critical:  p.CriticalThreshold,
			Emergency: p.EmergencyThreshold,
		})
	}
	return rows
}

// Regions returns the service areas in declared order.
func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// RegionNames returns the region names in declared order.
func RegionNames() []string {
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.Name
	}
	return names
}

// RegionByName returns the region with the given name.
func RegionByName(name string) (Region, bool) {
	for _, r := range regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Feeders returns the feeder identifiers in declared order.
func Feeders() []string {
	out := make([]string, len(feeders))
	copy(out, feeders)
	return out
}

// Poles returns the pole identifiers in declared order.
func Poles() []string {
	out := make([]string, len(poles))
	copy(out, poles)
	return out
}

// TotalAssets returns the fleet size across all profiles.
func TotalAssets() int {
	total := 0
	for _, p := range profiles {
		total += p.Count
	}
	return total
}

// Validate checks the structural invariants of a profile set.
func Validate(set []Profile) *validation.Report {
	report := validation.NewReport()

	seen := map[EquipmentType]bool{}
	for _, p := range set {
		path := fmt.Sprintf("catalog.%s", p.Type)

		if seen[p.Type] {
			report.AddError(validation.Result{
				Level:   validation.LevelCatalog,
				Message: fmt.Sprintf("duplicate profile for %s", p.Type),
				Path:    path,
			})
		}
		seen[p.Type] = true

		if p.Count <= 0 {
			report.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     "population count must be positive",
				Path:        path + ".count",
				ActualValue: p.Count,
				Expected:    "> 0",
			})
		}
		if p.CriticalThreshold <= p.WarningThreshold || p.CriticalThreshold >= p.EmergencyThreshold {
			report.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     "critical threshold must lie strictly between warning and emergency",
				Path:        path + ".critical_threshold",
				ActualValue: p.CriticalThreshold,
				Expected:    fmt.Sprintf("(%d, %d)", p.WarningThreshold, p.EmergencyThreshold),
			})
		}
		if p.LoadMinA >= p.LoadMaxA {
			report.AddError(validation.Result{
				Level:       validation.LevelCatalog,
				Message:     "load range must be non-empty",
				Path:        path + ".load_range",
				ActualValue: fmt.Sprintf("(%g, %g)", p.LoadMinA, p.LoadMaxA),
				Expected:    "min < max",
			})
		}
	}

	return report
}
