package optimizer

import (
	"math"
	"sort"
)

// Scoring constants. Range floors prevent division by zero when all
// candidates tie; tier boundaries are part of the scoring contract.
const (
	minDurationRangeSeconds = 1.0
	minEmissionsRangeKG     = 0.1

	tierHighlyRecommended = 80
	tierRecommended       = 60
)

// Recommendation labels.
const (
	RecommendationHigh        = "Highly Recommended"
	RecommendationRecommended = "Recommended"
	RecommendationAlternative = "Alternative Option"
)

// weights returns (time, emissions) weights for a priority.
func weights(priority Priority) (timeWeight, emissionsWeight float64) {
	switch priority {
	case PriorityTime:
		return 0.8, 0.2
	case PriorityEmissions:
		return 0.2, 0.8
	default:
		return 0.5, 0.5
	}
}

// Score assigns each route a 0-100 composite score and recommendation
// tier, then sorts by score descending. The sort is stable: ties keep
// their original relative order. The input slice is modified in place
// and returned.
func Score(routes []Route, priority Priority) []Route {
	if len(routes) == 0 {
		return routes
	}

	timeWeight, emissionsWeight := weights(priority)

	minDuration, maxDuration := routes[0].DurationSeconds, routes[0].DurationSeconds
	minEmissions, maxEmissions := routes[0].EmissionsKG, routes[0].EmissionsKG
	for _, r := range routes[1:] {
		minDuration = math.Min(minDuration, r.DurationSeconds)
		maxDuration = math.Max(maxDuration, r.DurationSeconds)
		minEmissions = math.Min(minEmissions, r.EmissionsKG)
		maxEmissions = math.Max(maxEmissions, r.EmissionsKG)
	}

	durationRange := math.Max(minDurationRangeSeconds, maxDuration-minDuration)
	emissionsRange := math.Max(minEmissionsRangeKG, maxEmissions-minEmissions)

	for i := range routes {
		timeScore := 1 - (routes[i].DurationSeconds-minDuration)/durationRange
		emissionsScore := 1 - (routes[i].EmissionsKG-minEmissions)/emissionsRange

		score := int(math.Round(100 * (timeWeight*timeScore + emissionsWeight*emissionsScore)))
		routes[i].Score = score
		routes[i].Recommendation = recommendationFor(score)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Score > routes[j].Score
	})

	return routes
}

func recommendationFor(score int) string {
	switch {
	case score >= tierHighlyRecommended:
		return RecommendationHigh
	case score >= tierRecommended:
		return RecommendationRecommended
	default:
		return RecommendationAlternative
	}
}
