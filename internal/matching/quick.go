// internal/matching/quick.go
// Cheap heuristic score for bulk candidate ranking. It is independent of the
// six-dimension score and the two may disagree for the same pair.

package matching

import (
	"math"
	"sort"
)

const (
	dealbreakerScore = 20
	quickBase        = 40

	// MinTasteConfidence is the confidence below which a taste profile is ignored
	MinTasteConfidence = 0.3
)

// QuickCompatibilityScore returns a 0-100 approximation of compatibility.
// Pairs with no direct or complementary intent overlap score 20 without any
// further work.
func QuickCompatibilityScore(user, candidate Profile) int {
	if !hasIntentOverlap(user.IntentIDs, candidate.IntentIDs) {
		return dealbreakerScore
	}

	score := quickBase
	score += min(len(sharedIntents(user.IntentIDs, candidate.IntentIDs))*10, 20)

	if user.Pace != "" && user.Pace == candidate.Pace {
		score += 10
	}
	if user.ResponseStyle != "" && user.ResponseStyle == candidate.ResponseStyle {
		score += 10
	}

	us, cs := user.RelationshipStructure, candidate.RelationshipStructure
	switch {
	case us != "" && us == cs:
		score += 15
	case us != "" && cs != "" && structuresCompatible(us, cs):
		score += 8
	}

	return min(score, 100)
}

// RankProfilesByCompatibility orders candidates by quick score, best first.
// With a taste profile of sufficient confidence the taste match is blended in
// at 30%. Equal scores keep their input order.
func RankProfilesByCompatibility(user Profile, candidates []Profile, taste *UserTasteProfile) []ScoredProfile {
	useTaste := taste != nil && taste.ConfidenceScore >= MinTasteConfidence

	ranked := make([]ScoredProfile, 0, len(candidates))
	for _, c := range candidates {
		score := QuickCompatibilityScore(user, c)
		if useTaste {
			tm := MatchesTasteProfile(c, *taste)
			score = int(math.Round(0.7*float64(score) + 0.3*float64(min(tm.Score, 100))))
		}
		ranked = append(ranked, ScoredProfile{Profile: c, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
