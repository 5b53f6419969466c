// Package registry instantiates the asset population from the equipment
// catalog. The registry is built once per run; each asset's baseline
// attributes are fixed for the life of the run and every monthly
// computation reads them without mutation.
package registry

import (
	"fmt"
	"math"

	"github.com/gridwatch/riskgen/pkg/catalog"
	"github.com/gridwatch/riskgen/pkg/rng"
)

// Asset is one unit of fleet equipment with its baseline physical state.
type Asset struct {
	ID                string
	Type              catalog.EquipmentType
	Region            string
	Feeder            string
	Pole              string
	Latitude          float64
	Longitude         float64
	BaseAgeYears      float64
	BaseCondition     float64
	BaseOverdueDays   float64
	BaseConsequence   float64
	CriticalThreshold int
	LoadMinA          float64
	LoadMaxA          float64
}

// Placement jitter around a region center, in degrees.
const positionJitterDeg = 0.07

// Baseline attribute ranges drawn at build time.
const (
	minBaseAgeYears    = 3.0
	maxBaseAgeYears    = 32.0
	minBaseCondition   = 4.8
	maxBaseCondition   = 9.4
	minBaseOverdueDays = 5.0
	maxBaseOverdueDays = 110.0
	consequenceJitter  = 8.0
)

// Build creates the full asset population in catalog order. For each
// profile, units are numbered 1..count; per asset the stream is consumed in
// this exact order: region, feeder, pole, latitude jitter, longitude
// jitter, base age, base condition, base overdue days, base consequence.
// Reordering these draws changes every downstream value for a given seed.
func Build(profiles []catalog.Profile, stream *rng.Stream) []Asset {
	var assets []Asset

	regionNames := catalog.RegionNames()
	feeders := catalog.Feeders()
	poles := catalog.Poles()

	for _, profile := range profiles {
		for unit := 1; unit <= profile.Count; unit++ {
			regionName := stream.Pick(regionNames)
			feeder := stream.Pick(feeders)
			pole := stream.Pick(poles)

			region, _ := catalog.RegionByName(regionName)
			lat := region.CenterLat + stream.Uniform(-positionJitterDeg, positionJitterDeg)
			lon := region.CenterLon + stream.Uniform(-positionJitterDeg, positionJitterDeg)

			assets = append(assets, Asset{
				ID:                fmt.Sprintf("%s-%03d", profile.Prefix, unit),
				Type:              profile.Type,
				Region:            regionName,
				Feeder:            feeder,
				Pole:              pole,
				Latitude:          round6(lat),
				Longitude:         round6(lon),
				BaseAgeYears:      stream.Uniform(minBaseAgeYears, maxBaseAgeYears),
				BaseCondition:     stream.Uniform(minBaseCondition, maxBaseCondition),
				BaseOverdueDays:   stream.Uniform(minBaseOverdueDays, maxBaseOverdueDays),
				BaseConsequence:   profile.BaseConsequence + stream.Uniform(-consequenceJitter, consequenceJitter),
				CriticalThreshold: profile.CriticalThreshold,
				LoadMinA:          profile.LoadMinA,
				LoadMaxA:          profile.LoadMaxA,
			})
		}
	}

	return assets
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
