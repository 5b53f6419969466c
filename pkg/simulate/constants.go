package simulate

// Tuning constants for the monthly risk model. Values come from the fleet
// risk calibration; the two weight sets (failure tendency vs probability
// score) are independently tuned and intentionally not unified.
const (
	conditionDecayPerMonth = 0.075 // score points lost per month
	conditionSeasonPenalty = 0.20  // extra loss at peak season
	conditionNoise         = 0.35  // ± score points

	loadSeasonWeight = 0.65 // seasonal share of load swing
	loadDemandWeight = 0.35 // demand-cycle share of load swing
	loadNoiseA       = 8.0  // ± amps

	weatherBase  = 60.0 // stress index at neutral season
	weatherSwing = 26.0 // seasonal amplitude
	weatherNoise = 8.0  // ± index points
	weatherFloor = 20.0
	weatherCeil  = 100.0

	overdueGrowthPerMonth = 3.5  // days per month
	overdueNoise          = 12.0 // ± days
	overdueCeilDays       = 220.0

	ageFactorHorizonYears = 40.0 // age at which the age factor saturates

	// Failure tendency blend (weather stands in for load here).
	tendencyAgeWeight         = 0.35
	tendencyConditionWeight   = 0.35
	tendencyWeatherWeight     = 0.15
	tendencyMaintenanceWeight = 0.15

	// Probability score blend.
	probAgeWeight       = 0.20
	probConditionWeight = 0.30
	probLoadWeight      = 0.18
	probWeatherWeight   = 0.15
	probHistoryWeight   = 0.17
	historyFailureShare = 0.65 // failure factor share within the history term
	historyOverdueShare = 0.35

	consequenceNoise = 4.0 // ± score points
	consequenceFloor = 35.0
	consequenceCeil  = 100.0

	// Rare stress spikes that push assets over threshold.
	shockSeasonGate    = 0.60
	shockSeasonChance  = 0.23
	shockSeasonMin     = 8.0
	shockSeasonMax     = 20.0
	shockOffpeakChance = 0.03
	shockOffpeakMin    = 5.0
	shockOffpeakMax    = 12.0

	riskProbabilityWeight = 0.76
	riskConsequenceWeight = 0.24

	// Cost model.
	inspectionBaseUSD     = 110.0
	inspectionPerFailure  = 20.0 // surcharge per trailing-12m failure
	inspectionNoiseMaxUSD = 60.0
	impactBaseUSD         = 850.0
	impactPerRiskPoint    = 45.0
	impactPerConsequence  = 36.0
	impactPerFailure      = 400.0
	impactJitterLo        = 0.92 // multiplicative
	impactJitterHi        = 1.08
)

// Recommended-action cutoffs, checked in descending order; ties resolve to
// the higher band.
const (
	actionDispatchCutoff   = 88.0
	actionCorrectiveCutoff = 75.0
	actionPreventiveCutoff = 65.0
)

const (
	ActionImmediateDispatch     = "Immediate dispatch (24h)"
	ActionCorrectiveMaintenance = "Corrective maintenance (7d)"
	ActionPreventiveMaintenance = "Preventive maintenance (30d)"
	ActionRoutineMonitoring     = "Routine monitoring"
)
