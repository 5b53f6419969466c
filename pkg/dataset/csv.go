package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gridwatch/riskgen/pkg/simulate"
)

// Output file names, fixed by the downstream report model.
const (
	HistoryFileName    = "equipment_risk_history.csv"
	ThresholdsFileName = "risk_thresholds.csv"
)

// HistoryColumns is the observation table header. The downstream report
// binds queries to these names; any rename is a breaking interface change.
var HistoryColumns = []string{
	"Date",
	"Year",
	"Month",
	"Region",
	"Feeder",
	"PoleNumber",
	"AssetID",
	"EquipmentType",
	"Latitude",
	"Longitude",
	"AgeYears",
	"ConditionScore",
	"LoadA",
	"WoodenPoleTiltDeg",
	"InterferenceM",
	"InsulatorContaminationPct",
	"ArresterLeakageCurrentmA",
	"FailureCount12M",
	"MaintenanceOverdueDays",
	"ConsequenceScore",
	"RiskIndex",
	"CriticalFlag",
	"InspectionCostUSD",
	"FailureImpactUSD",
	"RecommendedAction",
}

// ThresholdColumns is the threshold table header.
var ThresholdColumns = []string{
	"EquipmentType",
	"WarningThreshold",
	"CriticalThreshold",
	"EmergencyThreshold",
}

// Write emits both tables under dir. Both files are written to temporary
// paths first and renamed into place only once both are complete, so a
// failed run leaves no partial output behind.
func (t *Tables) Write(dir string) (historyPath, thresholdsPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output dir: %w", err)
	}

	historyPath = filepath.Join(dir, HistoryFileName)
	thresholdsPath = filepath.Join(dir, ThresholdsFileName)

	historyTmp, err := writeTemp(dir, HistoryFileName, t.historyRecords())
	if err != nil {
		return "", "", err
	}
	thresholdsTmp, err := writeTemp(dir, ThresholdsFileName, t.thresholdRecords())
	if err != nil {
		os.Remove(historyTmp)
		return "", "", err
	}

	if err := os.Rename(historyTmp, historyPath); err != nil {
		os.Remove(historyTmp)
		os.Remove(thresholdsTmp)
		return "", "", fmt.Errorf("finalizing %s: %w", HistoryFileName, err)
	}
	if err := os.Rename(thresholdsTmp, thresholdsPath); err != nil {
		os.Remove(thresholdsTmp)
		return "", "", fmt.Errorf("finalizing %s: %w", ThresholdsFileName, err)
	}

	return historyPath, thresholdsPath, nil
}

// ReadTable loads a CSV table back, returning the header and data rows.
func ReadTable(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("table %s is empty", path)
	}
	return records[0], records[1:], nil
}

func (t *Tables) historyRecords() [][]string {
	records := make([][]string, 0, len(t.Observations)+1)
	records = append(records, HistoryColumns)
	for _, obs := range t.Observations {
		records = append(records, historyRow(obs))
	}
	return records
}

func (t *Tables) thresholdRecords() [][]string {
	records := make([][]string, 0, len(t.Thresholds)+1)
	records = append(records, ThresholdColumns)
	for _, row := range t.Thresholds {
		records = append(records, []string{
			string(row.Type),
			strconv.Itoa(row.Warning),
			strconv.Itoa(row.Critical),
			strconv.Itoa(row.Emergency),
		})
	}
	return records
}

func historyRow(obs simulate.Observation) []string {
	flag := "0"
	if obs.Critical {
		flag = "1"
	}
	return []string{
		obs.Date.Format("2006-01-02"),
		strconv.Itoa(obs.Date.Year()),
		obs.Date.Format("Jan"),
		obs.Region,
		obs.Feeder,
		obs.Pole,
		obs.AssetID,
		string(obs.Type),
		formatFloat(obs.Latitude),
		formatFloat(obs.Longitude),
		fixed(obs.AgeYears, 1),
		fixed(obs.Condition, 2),
		fixed(obs.LoadA, 1),
		optional(obs.PoleTiltDeg, 2),
		fixed(obs.InterferenceM, 2),
		optional(obs.Contamination, 1),
		optional(obs.LeakageMA, 2),
		strconv.Itoa(obs.FailureCount),
		strconv.Itoa(obs.OverdueDays),
		fixed(obs.Consequence, 1),
		fixed(obs.RiskIndex, 1),
		flag,
		strconv.Itoa(obs.InspectionUSD),
		strconv.Itoa(obs.ImpactUSD),
		obs.Action,
	}
}

// optional renders an absent sensor value as the empty string, never zero.
func optional(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return fixed(*v, prec)
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeTemp(dir, name string, records [][]string) (string, error) {
	f, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return f.Name(), nil
}
