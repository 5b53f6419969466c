package report

import (
	"fmt"

	"github.com/gridwatch/riskgen/pkg/validation"
)

// RefKind distinguishes column references from measure references.
type RefKind string

const (
	RefColumn  RefKind = "column"
	RefMeasure RefKind = "measure"
)

// QueryRef is one table.property reference used by a visual.
type QueryRef struct {
	Kind     RefKind `json:"kind"`
	Table    string  `json:"table"`
	Property string  `json:"property"`
}

// VisualBinding is the set of query references one visual depends on.
type VisualBinding struct {
	Visual string     `json:"visual"`
	Refs   []QueryRef `json:"refs"`
}

// DefaultBindings lists the query references of the shipped dashboard
// visuals.
func DefaultBindings() []VisualBinding {
	return []VisualBinding{
		{
			Visual: "Forecast Risk Index and Critical Threshold",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "Date"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Mean Risk Index"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Critical Threshold"},
			},
		},
		{
			Visual: "Risk Index by Equipment Type",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "EquipmentType"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Mean Risk Index"},
			},
		},
		{
			Visual: "Asset Risk Matrix (Asset / Region)",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "AssetID"},
				{Kind: RefColumn, Table: HistoryTable, Property: "Region"},
				{Kind: RefColumn, Table: HistoryTable, Property: "RiskIndex"},
				{Kind: RefColumn, Table: HistoryTable, Property: "RecommendedAction"},
			},
		},
		{
			Visual: "Critical Assets by Equipment Type",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "EquipmentType"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Critical Asset Count"},
			},
		},
		{
			Visual: "Risk Trend with Critical Points",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "Date"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Mean Risk Index"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Critical Point Marker"},
			},
		},
		{
			Visual: "Critical Assets by Region and Equipment Type",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "Region"},
				{Kind: RefColumn, Table: HistoryTable, Property: "EquipmentType"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Critical Asset Count"},
			},
		},
		{
			Visual: "Critical Impact by Feeder / Pole Location",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "Feeder"},
				{Kind: RefColumn, Table: HistoryTable, Property: "PoleNumber"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Total Failure Impact"},
			},
		},
		{
			Visual: "Critical Impact by Region",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: HistoryTable, Property: "Region"},
				{Kind: RefMeasure, Table: HistoryTable, Property: "Total Failure Impact"},
			},
		},
		{
			Visual: "Threshold Reference",
			Refs: []QueryRef{
				{Kind: RefColumn, Table: ThresholdsTable, Property: "EquipmentType"},
				{Kind: RefColumn, Table: ThresholdsTable, Property: "WarningThreshold"},
				{Kind: RefColumn, Table: ThresholdsTable, Property: "CriticalThreshold"},
				{Kind: RefColumn, Table: ThresholdsTable, Property: "EmergencyThreshold"},
			},
		},
	}
}

// ValidateBindings checks every visual query reference against the model.
func ValidateBindings(m *Model, bindings []VisualBinding) *validation.Report {
	report := validation.NewReport()

	for _, binding := range bindings {
		for _, ref := range binding.Refs {
			path := fmt.Sprintf("visual(%s)", binding.Visual)

			table, ok := m.TableByName(ref.Table)
			if !ok {
				report.AddError(validation.Result{
					Level:       validation.LevelBinding,
					Message:     fmt.Sprintf("reference to unknown table %s", ref.Table),
					Path:        path,
					ActualValue: ref.Table,
				})
				continue
			}

			switch ref.Kind {
			case RefColumn:
				if !table.HasColumn(ref.Property) {
					report.AddError(validation.Result{
						Level:       validation.LevelBinding,
						Message:     fmt.Sprintf("missing column %s[%s]", ref.Table, ref.Property),
						Path:        path,
						ActualValue: ref.Property,
					})
				}
			case RefMeasure:
				if !table.HasMeasure(ref.Property) {
					report.AddError(validation.Result{
						Level:       validation.LevelBinding,
						Message:     fmt.Sprintf("missing measure %s[%s]", ref.Table, ref.Property),
						Path:        path,
						ActualValue: ref.Property,
					})
				}
			default:
				report.AddError(validation.Result{
					Level:   validation.LevelBinding,
					Message: fmt.Sprintf("unknown reference kind %q", ref.Kind),
					Path:    path,
				})
			}
		}
	}

	return report
}

// ValidateSource checks that a model table's source columns all exist in the
// live CSV header, and flags header columns the model does not bind.
func ValidateSource(m *Model, tableName string, header []string) *validation.Report {
	report := validation.NewReport()

	table, ok := m.TableByName(tableName)
	if !ok {
		report.AddError(validation.Result{
			Level:       validation.LevelBinding,
			Message:     fmt.Sprintf("model has no table %s", tableName),
			Path:        "model",
			ActualValue: tableName,
		})
		return report
	}

	present := map[string]bool{}
	for _, col := range header {
		present[col] = true
	}
	for _, col := range table.Columns {
		if !present[col.SourceColumn] {
			report.AddError(validation.Result{
				Level:       validation.LevelBinding,
				Message:     fmt.Sprintf("source column %s missing from %s", col.SourceColumn, table.Source),
				Path:        fmt.Sprintf("model.%s.%s", table.Name, col.Name),
				ActualValue: col.SourceColumn,
			})
		}
	}

	bound := map[string]bool{}
	for _, col := range table.Columns {
		bound[col.SourceColumn] = true
	}
	for _, col := range header {
		if !bound[col] {
			report.AddWarning(validation.Result{
				Level:       validation.LevelBinding,
				Message:     fmt.Sprintf("CSV column %s is not bound by table %s", col, table.Name),
				Path:        fmt.Sprintf("model.%s", table.Name),
				ActualValue: col,
			})
		}
	}

	return report
}
