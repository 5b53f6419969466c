package simulate

import (
	"testing"
	"time"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/registry"
	"github.com/gridwatch/riskgen/pkg/rng"
)

func testAsset(equipType catalog.EquipmentType) registry.Asset {
	profile, _ := catalog.ProfileFor(equipType)
	return registry.Asset{
		ID:                profile.Prefix + "-001",
		Type:              equipType,
		Region:            "North",
		Feeder:            "A LINE",
		Pole:              "P1",
		Latitude:          25.08,
		Longitude:         121.23,
		BaseAgeYears:      18.0,
		BaseCondition:     7.2,
		BaseOverdueDays:   40,
		BaseConsequence:   profile.BaseConsequence,
		CriticalThreshold: profile.CriticalThreshold,
		LoadMinA:          profile.LoadMinA,
		LoadMaxA:          profile.LoadMaxA,
	}
}

func monthDate(idx int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, idx, 0)
}

func TestMonthlyBounds(t *testing.T) {
	stream := rng.New(42)
	for _, equipType := range []catalog.EquipmentType{catalog.OverheadLine, catalog.Insulator, catalog.Arrester} {
		asset := testAsset(equipType)
		for idx := 0; idx < 48; idx++ {
			obs := Monthly(asset, idx, monthDate(idx), stream)

			if obs.RiskIndex < 0 || obs.RiskIndex > 100 {
				t.Errorf("%s month %d: risk %v outside [0, 100]", equipType, idx, obs.RiskIndex)
			}
			if obs.Condition < 1 || obs.Condition > 10 {
				t.Errorf("%s month %d: condition %v outside [1, 10]", equipType, idx, obs.Condition)
			}
			if obs.FailureCount < 0 || obs.FailureCount > 4 {
				t.Errorf("%s month %d: failure count %d outside {0..4}", equipType, idx, obs.FailureCount)
			}
			if obs.LoadA < asset.LoadMinA || obs.LoadA > asset.LoadMaxA {
				t.Errorf("%s month %d: load %v outside [%v, %v]", equipType, idx, obs.LoadA, asset.LoadMinA, asset.LoadMaxA)
			}
			if obs.OverdueDays < 0 || obs.OverdueDays > 220 {
				t.Errorf("%s month %d: overdue %d outside [0, 220]", equipType, idx, obs.OverdueDays)
			}
			if obs.Consequence < 35 || obs.Consequence > 100 {
				t.Errorf("%s month %d: consequence %v outside [35, 100]", equipType, idx, obs.Consequence)
			}
			if obs.InspectionUSD < 110 {
				t.Errorf("%s month %d: inspection cost %d below base", equipType, idx, obs.InspectionUSD)
			}
			if obs.ImpactUSD <= 0 {
				t.Errorf("%s month %d: impact cost %d not positive", equipType, idx, obs.ImpactUSD)
			}
		}
	}
}

func TestMonthlyCriticalFlagConsistent(t *testing.T) {
	stream := rng.New(7)
	asset := testAsset(catalog.OverheadLine)
	for idx := 0; idx < 120; idx++ {
		obs := Monthly(asset, idx, monthDate(idx), stream)
		want := obs.RiskIndex >= float64(asset.CriticalThreshold)
		if obs.Critical != want {
			t.Errorf("month %d: risk %v threshold %d, flag = %v", idx, obs.RiskIndex, asset.CriticalThreshold, obs.Critical)
		}
	}
}

func TestIsCriticalBoundaryInclusive(t *testing.T) {
	if !isCritical(75.0, 75) {
		t.Error("risk exactly at threshold must be critical")
	}
	if isCritical(74.9, 75) {
		t.Error("risk below threshold must not be critical")
	}
	if !isCritical(75.1, 75) {
		t.Error("risk above threshold must be critical")
	}
}

func TestMonthlySensorExclusivity(t *testing.T) {
	stream := rng.New(11)
	cases := []struct {
		equipType   catalog.EquipmentType
		wantTilt    bool
		wantContam  bool
		wantLeakage bool
	}{
		{catalog.OverheadLine, true, false, false},
		{catalog.Insulator, false, true, false},
		{catalog.Arrester, false, false, true},
	}
	for _, c := range cases {
		for idx := 0; idx < 24; idx++ {
			obs := Monthly(testAsset(c.equipType), idx, monthDate(idx), stream)
			if (obs.PoleTiltDeg != nil) != c.wantTilt {
				t.Errorf("%s: tilt presence = %v, want %v", c.equipType, obs.PoleTiltDeg != nil, c.wantTilt)
			}
			if (obs.Contamination != nil) != c.wantContam {
				t.Errorf("%s: contamination presence = %v, want %v", c.equipType, obs.Contamination != nil, c.wantContam)
			}
			if (obs.LeakageMA != nil) != c.wantLeakage {
				t.Errorf("%s: leakage presence = %v, want %v", c.equipType, obs.LeakageMA != nil, c.wantLeakage)
			}
			if obs.InterferenceM <= 0 {
				t.Errorf("%s: interference %v must be set for every type", c.equipType, obs.InterferenceM)
			}
		}
	}
}

func TestMonthlySensorRanges(t *testing.T) {
	stream := rng.New(13)
	for idx := 0; idx < 60; idx++ {
		ohl := Monthly(testAsset(catalog.OverheadLine), idx, monthDate(idx), stream)
		if *ohl.PoleTiltDeg < 1.0 || *ohl.PoleTiltDeg > 15.0 {
			t.Errorf("tilt %v outside [1, 15]", *ohl.PoleTiltDeg)
		}
		if ohl.InterferenceM < 1.2 || ohl.InterferenceM > 6.5 {
			t.Errorf("overhead-line interference %v outside [1.2, 6.5]", ohl.InterferenceM)
		}

		ins := Monthly(testAsset(catalog.Insulator), idx, monthDate(idx), stream)
		if *ins.Contamination < 5 || *ins.Contamination > 95 {
			t.Errorf("contamination %v outside [5, 95]", *ins.Contamination)
		}

		arr := Monthly(testAsset(catalog.Arrester), idx, monthDate(idx), stream)
		if *arr.LeakageMA < 1.0 || *arr.LeakageMA > 18.0 {
			t.Errorf("leakage %v outside [1, 18]", *arr.LeakageMA)
		}
	}
}

func TestMonthlyDeterministic(t *testing.T) {
	asset := testAsset(catalog.Insulator)
	a := Monthly(asset, 5, monthDate(5), rng.New(42))
	b := Monthly(asset, 5, monthDate(5), rng.New(42))

	if a.RiskIndex != b.RiskIndex || a.FailureCount != b.FailureCount ||
		a.Condition != b.Condition || a.LoadA != b.LoadA ||
		a.InspectionUSD != b.InspectionUSD || a.ImpactUSD != b.ImpactUSD {
		t.Errorf("identical seeds produced different observations:\n%+v\n%+v", a, b)
	}
	if *a.Contamination != *b.Contamination {
		t.Errorf("contamination diverged: %v != %v", *a.Contamination, *b.Contamination)
	}
}

func TestMonthlyAgeGrowsLinearly(t *testing.T) {
	asset := testAsset(catalog.Arrester)
	stream := rng.New(3)
	first := Monthly(asset, 0, monthDate(0), stream)
	later := Monthly(asset, 24, monthDate(24), stream)

	if first.AgeYears != 18.0 {
		t.Errorf("month 0 age = %v, want base age 18.0", first.AgeYears)
	}
	if later.AgeYears != 20.0 {
		t.Errorf("month 24 age = %v, want 20.0", later.AgeYears)
	}
}

func TestActionForRisk(t *testing.T) {
	cases := []struct {
		risk float64
		want string
	}{
		{95, ActionImmediateDispatch},
		{88, ActionImmediateDispatch}, // tie resolves upward
		{87.9, ActionCorrectiveMaintenance},
		{75, ActionCorrectiveMaintenance},
		{74.9, ActionPreventiveMaintenance},
		{65, ActionPreventiveMaintenance},
		{64.9, ActionRoutineMonitoring},
		{0, ActionRoutineMonitoring},
	}
	for _, c := range cases {
		if got := ActionForRisk(c.risk); got != c.want {
			t.Errorf("ActionForRisk(%v) = %q, want %q", c.risk, got, c.want)
		}
	}
}

func TestFailureCountBands(t *testing.T) {
	// Each band must only emit its two designated counts.
	bands := []struct {
		tendency float64
		allowed  [2]int
	}{
		{0.10, [2]int{0, 1}},
		{0.45, [2]int{1, 2}},
		{0.65, [2]int{2, 3}},
		{0.90, [2]int{3, 4}},
	}
	stream := rng.New(21)
	for _, band := range bands {
		for i := 0; i < 200; i++ {
			got := failureCount(band.tendency, stream)
			if got != band.allowed[0] && got != band.allowed[1] {
				t.Fatalf("tendency %v produced count %d, allowed %v", band.tendency, got, band.allowed)
			}
		}
	}
}

func TestFailureTendencyWeights(t *testing.T) {
	// All factors at 100 saturate the tendency at 1.0.
	if got := failureTendency(100, 100, 100, 100); got != 1.0 {
		t.Errorf("saturated tendency = %v, want 1.0", got)
	}
	if got := failureTendency(0, 0, 0, 0); got != 0 {
		t.Errorf("zero tendency = %v, want 0", got)
	}
}
