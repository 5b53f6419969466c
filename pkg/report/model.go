// Package report describes the data side of the downstream dashboard: the
// model tables bound to the generated CSVs, the measures defined over them,
// and the query references the shipped visuals use. The template compiler
// itself is external; this package exists so a column rename on either side
// of that boundary is caught here instead of inside the compiler.
package report

import "github.com/gridwatch/riskgen/pkg/dataset"

// Column binds one model column to a source column of the CSV.
type Column struct {
	Name         string `json:"name"`
	DataType     string `json:"dataType"`
	SourceColumn string `json:"sourceColumn"`
	SummarizeBy  string `json:"summarizeBy"`
}

// Measure is a named DAX expression defined on a model table.
type Measure struct {
	Name string `json:"name"`
	DAX  string `json:"dax"`
}

// Table is one model table with its source file, columns, and measures.
type Table struct {
	Name     string    `json:"name"`
	Source   string    `json:"source"`
	Columns  []Column  `json:"columns"`
	Measures []Measure `json:"measures,omitempty"`
}

// Relationship links two model tables by column.
type Relationship struct {
	Name       string `json:"name"`
	FromTable  string `json:"fromTable"`
	FromColumn string `json:"fromColumn"`
	ToTable    string `json:"toTable"`
	ToColumn   string `json:"toColumn"`
}

// Model is the complete data model consumed by the report template.
type Model struct {
	Name          string         `json:"name"`
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
}

// Model table names, referenced by visual bindings.
const (
	HistoryTable    = "RiskHistory"
	ThresholdsTable = "RiskThresholds"
)

// historyColumnTypes maps every observation CSV column to its model data
// type. Kept in sync with dataset.HistoryColumns; DefaultModel fails
// validation if the two drift apart.
var historyColumnTypes = map[string]string{
	"Date":                      "dateTime",
	"Year":                      "int64",
	"Month":                     "string",
	"Region":                    "string",
	"Feeder":                    "string",
	"PoleNumber":                "string",
	"AssetID":                   "string",
	"EquipmentType":             "string",
	"Latitude":                  "double",
	"Longitude":                 "double",
	"AgeYears":                  "double",
	"ConditionScore":            "double",
	"LoadA":                     "double",
	"WoodenPoleTiltDeg":         "double",
	"InterferenceM":             "double",
	"InsulatorContaminationPct": "double",
	"ArresterLeakageCurrentmA":  "double",
	"FailureCount12M":           "int64",
	"MaintenanceOverdueDays":    "int64",
	"ConsequenceScore":          "double",
	"RiskIndex":                 "double",
	"CriticalFlag":              "int64",
	"InspectionCostUSD":         "int64",
	"FailureImpactUSD":          "int64",
	"RecommendedAction":         "string",
}

var thresholdColumnTypes = map[string]string{
	"EquipmentType":      "string",
	"WarningThreshold":   "int64",
	"CriticalThreshold":  "int64",
	"EmergencyThreshold": "int64",
}

// DefaultModel builds the model shipped with the dashboard: the history and
// threshold tables in CSV column order, the risk measures, and the
// type-to-threshold relationship.
func DefaultModel() *Model {
	return &Model{
		Name: "Distribution Risk Dashboard",
		Tables: []Table{
			{
				Name:    HistoryTable,
				Source:  dataset.HistoryFileName,
				Columns: columnsFor(dataset.HistoryColumns, historyColumnTypes),
				Measures: []Measure{
					{
						Name: "Mean Risk Index",
						DAX:  "AVERAGE(RiskHistory[RiskIndex])",
					},
					{
						Name: "Critical Threshold",
						DAX:  "AVERAGEX(VALUES(RiskHistory[EquipmentType]), LOOKUPVALUE(RiskThresholds[CriticalThreshold], RiskThresholds[EquipmentType], RiskHistory[EquipmentType]))",
					},
					{
						Name: "Critical Point Marker",
						DAX:  "IF([Mean Risk Index] >= [Critical Threshold], [Mean Risk Index])",
					},
					{
						Name: "Critical Asset Count",
						DAX:  "CALCULATE(DISTINCTCOUNT(RiskHistory[AssetID]), RiskHistory[CriticalFlag] = 1)",
					},
					{
						Name: "Total Failure Impact",
						DAX:  "SUM(RiskHistory[FailureImpactUSD])",
					},
				},
			},
			{
				Name:    ThresholdsTable,
				Source:  dataset.ThresholdsFileName,
				Columns: columnsFor(dataset.ThresholdColumns, thresholdColumnTypes),
			},
		},
		Relationships: []Relationship{
			{
				Name:       "rel_history_thresholds",
				FromTable:  HistoryTable,
				FromColumn: "EquipmentType",
				ToTable:    ThresholdsTable,
				ToColumn:   "EquipmentType",
			},
		},
	}
}

// TableByName returns the named model table.
func (m *Model) TableByName(name string) (*Table, bool) {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i], true
		}
	}
	return nil, false
}

// HasColumn reports whether the table defines the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// HasMeasure reports whether the table defines the named measure.
func (t *Table) HasMeasure(name string) bool {
	for _, m := range t.Measures {
		if m.Name == name {
			return true
		}
	}
	return false
}

func columnsFor(names []string, types map[string]string) []Column {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		dataType, ok := types[name]
		if !ok {
			dataType = "string"
		}
		cols = append(cols, Column{
			Name:         name,
			DataType:     dataType,
			SourceColumn: name,
			SummarizeBy:  "none",
		})
	}
	return cols
}
