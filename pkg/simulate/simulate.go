// Package simulate computes one observation per asset per month. Monthly is
// a pure function of the asset baseline, the month index, and the next
// draws from the shared stream; it holds no state between calls.
package simulate

import (
	"math"
	"time"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/registry"
	"github.com/gridwatch/riskgen/pkg/rng"
)

// Observation is the full monthly record for one asset. Exactly one of the
// three type-specific sensor fields is set, matching the equipment type;
// the others stay nil and serialize as empty at the CSV boundary.
type Observation struct {
	Date          time.Time
	Region        string
	Feeder        string
	Pole          string
	AssetID       string
	Type          catalog.EquipmentType
	Latitude      float64
	Longitude     float64
	AgeYears      float64
	Condition     float64
	LoadA         float64
	PoleTiltDeg   *float64
	InterferenceM float64
	Contamination *float64
	LeakageMA     *float64
	FailureCount  int
	OverdueDays   int
	Consequence   float64
	RiskIndex     float64
	Critical      bool
	InspectionUSD int
	ImpactUSD     int
	Action        string
}

// Monthly computes the observation for one asset in one month.
//
// Stream consumption order is fixed: condition noise, load noise, weather
// noise, overdue noise, failure-band draw, consequence noise, shock draw(s),
// sensor draws (tilt then interference for overhead lines; interference then
// contamination for insulators; interference then leakage for arresters),
// inspection noise, impact jitter. The shock step consumes one draw when
// the season gate is closed, and one or two when it is open (the off-peak
// chance is only rolled if the peak-season chance misses).
func Monthly(asset registry.Asset, monthIdx int, date time.Time, stream *rng.Stream) Observation {
	season := math.Sin(2 * math.Pi * float64(monthIdx) / 12)
	demandCycle := math.Cos(2 * math.Pi * float64(monthIdx) / 6)

	ageYears := asset.BaseAgeYears + float64(monthIdx)/12.0

	condition := asset.BaseCondition -
		conditionDecayPerMonth*float64(monthIdx) -
		conditionSeasonPenalty*math.Max(season, 0) +
		stream.Uniform(-conditionNoise, conditionNoise)
	condition = clamp(condition, 1.0, 10.0)

	loadMid := (asset.LoadMinA + asset.LoadMaxA) / 2
	loadSpan := (asset.LoadMaxA - asset.LoadMinA) / 2
	loadA := loadMid +
		loadSpan*(loadSeasonWeight*season+loadDemandWeight*demandCycle) +
		stream.Uniform(-loadNoiseA, loadNoiseA)
	loadA = clamp(loadA, asset.LoadMinA, asset.LoadMaxA)

	weather := clamp(weatherBase+weatherSwing*season+stream.Uniform(-weatherNoise, weatherNoise),
		weatherFloor, weatherCeil)

	overdueDays := asset.BaseOverdueDays +
		overdueGrowthPerMonth*float64(monthIdx) +
		stream.Uniform(-overdueNoise, overdueNoise)
	overdue := int(clamp(overdueDays, 0, overdueCeilDays))

	ageFactor := clamp(ageYears/ageFactorHorizonYears*100, 0, 100)
	conditionFactor := clamp((10-condition)*10, 0, 100)
	loadFactor := clamp((loadA-asset.LoadMinA)/(asset.LoadMaxA-asset.LoadMinA)*100, 0, 100)
	maintenanceFactor := clamp(float64(overdue)/overdueCeilDays*100, 0, 100)

	failures := failureCount(failureTendency(ageFactor, conditionFactor, weather, maintenanceFactor), stream)
	failureFactor := clamp(float64(failures)/4*100, 0, 100)

	consequence := clamp(asset.BaseConsequence+stream.Uniform(-consequenceNoise, consequenceNoise),
		consequenceFloor, consequenceCeil)

	probability := probAgeWeight*ageFactor +
		probConditionWeight*conditionFactor +
		probLoadWeight*loadFactor +
		probWeatherWeight*weather +
		probHistoryWeight*(historyFailureShare*failureFactor+historyOverdueShare*maintenanceFactor)

	shock := 0.0
	if season > shockSeasonGate && stream.Float() < shockSeasonChance {
		shock = stream.Uniform(shockSeasonMin, shockSeasonMax)
	} else if stream.Float() < shockOffpeakChance {
		shock = stream.Uniform(shockOffpeakMin, shockOffpeakMax)
	}

	risk := round1(clamp(riskProbabilityWeight*probability+riskConsequenceWeight*consequence+shock, 0, 100))

	obs := Observation{
		Date:         date,
		Region:       asset.Region,
		Feeder:       asset.Feeder,
		Pole:         asset.Pole,
		AssetID:      asset.ID,
		Type:         asset.Type,
		Latitude:     asset.Latitude,
		Longitude:    asset.Longitude,
		AgeYears:     round1(ageYears),
		Condition:    round2(condition),
		LoadA:        round1(loadA),
		FailureCount: failures,
		OverdueDays:  overdue,
		Consequence:  round1(consequence),
		RiskIndex:    risk,
		Critical:     isCritical(risk, asset.CriticalThreshold),
		Action:       ActionForRisk(risk),
	}

	// Type-specific derived readings. Draw order within each branch matters.
	switch asset.Type {
	case catalog.OverheadLine:
		tilt := round2(gaussClamped(stream, 5+risk/20, 1.3, 1.0, 15.0))
		obs.PoleTiltDeg = &tilt
		obs.InterferenceM = round2(gaussClamped(stream, 3.0+risk/40, 0.35, 1.2, 6.5))
	case catalog.Insulator:
		obs.InterferenceM = round2(gaussClamped(stream, 2.8+risk/50, 0.30, 1.0, 5.8))
		contamination := round1(gaussClamped(stream, 30+risk/2, 7, 5, 95))
		obs.Contamination = &contamination
	default: // Arrester
		obs.InterferenceM = round2(gaussClamped(stream, 2.6+risk/55, 0.28, 1.0, 5.5))
		leakage := round2(gaussClamped(stream, 4+risk/12, 0.9, 1.0, 18.0))
		obs.LeakageMA = &leakage
	}

	obs.InspectionUSD = int(inspectionBaseUSD +
		inspectionPerFailure*float64(failures) +
		stream.Uniform(0, inspectionNoiseMaxUSD))
	obs.ImpactUSD = int((impactBaseUSD +
		risk*impactPerRiskPoint +
		consequence*impactPerConsequence +
		float64(failures)*impactPerFailure) *
		stream.Uniform(impactJitterLo, impactJitterHi))

	return obs
}

// failureTendency blends the normalized factors into a 0-1 score. Weather
// substitutes for load in this blend.
func failureTendency(ageFactor, conditionFactor, weather, maintenanceFactor float64) float64 {
	return (tendencyAgeWeight*ageFactor +
		tendencyConditionWeight*conditionFactor +
		tendencyWeatherWeight*weather +
		tendencyMaintenanceWeight*maintenanceFactor) / 100
}

// failureCount draws the trailing-12-month failure count from the
// tendency-banded distribution. Consumes exactly one draw.
func failureCount(tendency float64, stream *rng.Stream) int {
	switch {
	case tendency < 0.35:
		if stream.Float() < 0.75 {
			return 0
		}
		return 1
	case tendency < 0.55:
		if stream.Float() < 0.65 {
			return 1
		}
		return 2
	case tendency < 0.75:
		if stream.Float() < 0.60 {
			return 2
		}
		return 3
	default:
		if stream.Float() < 0.55 {
			return 3
		}
		return 4
	}
}

// ActionForRisk maps a risk index to the recommended action label.
func ActionForRisk(risk float64) string {
	switch {
	case risk >= actionDispatchCutoff:
		return ActionImmediateDispatch
	case risk >= actionCorrectiveCutoff:
		return ActionCorrectiveMaintenance
	case risk >= actionPreventiveCutoff:
		return ActionPreventiveMaintenance
	default:
		return ActionRoutineMonitoring
	}
}

// isCritical compares rounded risk to the per-type threshold. The boundary
// is inclusive.
func isCritical(risk float64, threshold int) bool {
	return risk >= float64(threshold)
}

func gaussClamped(stream *rng.Stream, mean, sigma, lo, hi float64) float64 {
	return clamp(stream.Gauss(mean, sigma), lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
