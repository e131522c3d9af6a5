// internal/matching/dimensions.go
// The six independent dimension calculators of the compatibility engine

package matching

import (
	"fmt"
	"math"
	"strings"
)

const (
	DimensionIntent        = "Intent Compatibility"
	DimensionQuiz          = "Quiz Compatibility"
	DimensionStructure     = "Relationship Structure Fit"
	DimensionCommunication = "Communication Style"
	DimensionValues        = "Values Alignment"
	DimensionBehavioral    = "Behavioral Compatibility"
)

const (
	WeightIntent        = 0.25
	WeightQuiz          = 0.20
	WeightStructure     = 0.15
	WeightCommunication = 0.15
	WeightValues        = 0.15
	WeightBehavioral    = 0.10
)

// DimensionWeights lists the fixed weights in dimension order
var DimensionWeights = []float64{
	WeightIntent, WeightQuiz, WeightStructure,
	WeightCommunication, WeightValues, WeightBehavioral,
}

const neutralScore = 50

// 1. Intent compatibility (25%)

func intentDimension(user, candidate Profile) CompatibilityDimension {
	shared := sharedIntents(user.IntentIDs, candidate.IntentIDs)
	complementary := complementaryIntents(user.IntentIDs, candidate.IntentIDs)

	direct := min(len(shared)*8, 16)
	comp := min(len(complementary)*3, 9)
	raw := min(direct+comp, 25)

	factors := make([]string, 0, len(shared)+len(complementary))
	for _, intent := range shared {
		factors = append(factors, "Shared intent: "+titleCase(intent))
	}
	for _, pair := range complementary {
		factors = append(factors, "Complementary intents: "+pair)
	}

	var explanation string
	switch {
	case len(shared) > 0:
		names := make([]string, len(shared))
		for i, intent := range shared {
			names[i] = titleCase(intent)
		}
		explanation = "You're both looking for " + strings.Join(names, ", ")
	case len(complementary) > 0:
		explanation = "Your relationship intentions complement each other"
	default:
		explanation = "You're looking for different things right now"
	}

	return CompatibilityDimension{
		Name:        DimensionIntent,
		Score:       raw * 4,
		Weight:      WeightIntent,
		Explanation: explanation,
		Factors:     factors,
	}
}

// sharedIntents returns the intents present on both sides, in user order
func sharedIntents(user, candidate []string) []string {
	return intersectStrings(dedupe(user), dedupe(candidate))
}

// complementaryIntents returns "user + candidate" pairs where the candidate's
// intent is listed under the user's intent and is not already shared.
func complementaryIntents(user, candidate []string) []string {
	u := dedupe(user)
	c := dedupe(candidate)
	shared := make(map[string]bool)
	for _, s := range intersectStrings(u, c) {
		shared[s] = true
	}

	pairs := make([]string, 0)
	for _, ui := range u {
		for _, ci := range c {
			if shared[ci] || ui == ci {
				continue
			}
			if containsString(intentCompatibility[ui], ci) {
				pairs = append(pairs, titleCase(ui)+" + "+titleCase(ci))
			}
		}
	}
	return pairs
}

// hasIntentOverlap reports whether any shared or complementary intent exists
// in either direction of the lookup table.
func hasIntentOverlap(user, candidate []string) bool {
	for _, ui := range dedupe(user) {
		for _, ci := range dedupe(candidate) {
			if ui == ci ||
				containsString(intentCompatibility[ui], ci) ||
				containsString(intentCompatibility[ci], ui) {
				return true
			}
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// 2. Quiz compatibility (20%)

type quizItem struct {
	name   string
	weight float64
	answer func(*QuizResult) int
}

var quizItems = []quizItem{
	{"communication style", 0.20, func(q *QuizResult) int { return q.CommunicationStyle }},
	{"jealousy management", 0.20, func(q *QuizResult) int { return q.JealousyManagement }},
	{"time management", 0.15, func(q *QuizResult) int { return q.TimeManagement }},
	{"hierarchy preference", 0.15, func(q *QuizResult) int { return q.HierarchyPreference }},
	{"disclosure level", 0.15, func(q *QuizResult) int { return q.DisclosureLevel }},
	{"boundary firmness", 0.15, func(q *QuizResult) int { return q.BoundaryFirmness }},
}

const maxQuizFactors = 3

func quizDimension(user, candidate Profile) CompatibilityDimension {
	if user.Quiz == nil || candidate.Quiz == nil {
		return CompatibilityDimension{
			Name:        DimensionQuiz,
			Score:       neutralScore,
			Weight:      WeightQuiz,
			Explanation: "Complete the compatibility quiz to unlock this insight",
			Factors:     []string{"Quiz not completed"},
		}
	}

	total := 0.0
	factors := make([]string, 0, maxQuizFactors)
	for _, item := range quizItems {
		diff := math.Abs(float64(item.answer(user.Quiz) - item.answer(candidate.Quiz)))
		similarity := clamp(1-diff/4, 0, 1)
		total += similarity * item.weight
		if similarity > 0.8 && len(factors) < maxQuizFactors {
			factors = append(factors, "Similar "+item.name)
		}
	}

	score := clampInt(int(math.Round(total*100)), 0, 100)

	var explanation string
	switch {
	case score >= 80:
		explanation = "Your quiz answers are closely aligned"
	case score >= 60:
		explanation = "Your quiz answers mostly line up"
	default:
		explanation = "Your quiz answers show some different approaches"
	}

	return CompatibilityDimension{
		Name:        DimensionQuiz,
		Score:       score,
		Weight:      WeightQuiz,
		Explanation: explanation,
		Factors:     factors,
	}
}

// 3. Relationship structure fit (15%)

func structureDimension(user, candidate Profile) CompatibilityDimension {
	us, cs := user.RelationshipStructure, candidate.RelationshipStructure
	d := CompatibilityDimension{Name: DimensionStructure, Weight: WeightStructure, Factors: []string{}}

	switch {
	case us == "" || cs == "":
		d.Score = neutralScore
		d.Explanation = "Relationship structure not specified"
		d.Factors = append(d.Factors, "Structure not specified")
	case us == cs:
		d.Score = 100
		d.Explanation = fmt.Sprintf("You both prefer %s relationships", titleCase(string(us)))
		d.Factors = append(d.Factors, "Same relationship structure")
	case structuresCompatible(us, cs):
		d.Score = 75
		d.Explanation = fmt.Sprintf("%s and %s structures can work well together", titleCase(string(us)), titleCase(string(cs)))
		d.Factors = append(d.Factors, "Compatible relationship structures")
	default:
		d.Score = 30
		d.Explanation = fmt.Sprintf("%s and %s structures may need extra negotiation", titleCase(string(us)), titleCase(string(cs)))
	}
	return d
}

// structuresCompatible looks up the candidate structure under the user's one
func structuresCompatible(user, candidate RelationshipStructure) bool {
	for _, s := range structureCompatibility[user] {
		if s == candidate {
			return true
		}
	}
	return false
}

// 4. Communication style match (15%)

func communicationDimension(user, candidate Profile) CompatibilityDimension {
	score := neutralScore
	factors := make([]string, 0, 2)

	switch {
	case user.Pace != "" && user.Pace == candidate.Pace:
		score += 25
		factors = append(factors, "Same pace preference")
	case user.Pace == PaceMedium || candidate.Pace == PaceMedium:
		score += 10
		factors = append(factors, "Flexible pace")
	}

	if user.ResponseStyle != "" && user.ResponseStyle == candidate.ResponseStyle {
		score += 25
		factors = append(factors, "Same response style")
	} else {
		score += 5
	}

	score = min(score, 100)

	var explanation string
	switch {
	case score >= 75:
		explanation = "You communicate at a similar rhythm"
	case score >= 60:
		explanation = "Your communication styles are workable"
	default:
		explanation = "You may communicate at different speeds"
	}

	return CompatibilityDimension{
		Name:        DimensionCommunication,
		Score:       score,
		Weight:      WeightCommunication,
		Explanation: explanation,
		Factors:     factors,
	}
}

// 5. Values alignment (15%)

func valuesDimension(user, candidate Profile) CompatibilityDimension {
	uv := extractValues(profileText(user))
	cv := extractValues(profileText(candidate))
	shared := sharedValueList(uv, cv)

	denominator := max(len(uv), len(cv), 1)
	score := min(int(math.Round(float64(len(shared))/float64(denominator)*150)), 100)

	factors := make([]string, len(shared))
	for i, v := range shared {
		factors[i] = string(v)
	}

	var explanation string
	switch {
	case len(shared) >= 2:
		explanation = fmt.Sprintf("You both value %s and %s", shared[0], shared[1])
	case len(shared) == 1:
		explanation = fmt.Sprintf("You both value %s", shared[0])
	default:
		explanation = "Share more about what matters to you to discover common values"
	}

	return CompatibilityDimension{
		Name:        DimensionValues,
		Score:       score,
		Weight:      WeightValues,
		Explanation: explanation,
		Factors:     factors,
	}
}

func sharedValueList(a, b []Value) []Value {
	inB := make(map[Value]bool, len(b))
	for _, v := range b {
		inB[v] = true
	}
	shared := make([]Value, 0)
	for _, v := range a {
		if inB[v] {
			shared = append(shared, v)
		}
	}
	return shared
}

// 6. Behavioral compatibility (10%)
// Taste-driven when a taste profile is supplied, flag equality otherwise.
// The two branches never blend.

func behavioralDimension(user, candidate Profile, taste *UserTasteProfile) CompatibilityDimension {
	score := neutralScore
	factors := make([]string, 0, 3)
	var explanation string

	if taste != nil {
		ap := taste.AttractionPatterns
		if ap.PreferredAgeRange.Contains(candidate.Age) {
			score += 15
			factors = append(factors, "In your preferred age range")
		}
		if candidate.Pace != "" && candidate.Pace == ap.PreferredPace {
			score += 15
			factors = append(factors, "Matches the pace you usually like")
		}
		if len(intersectStrings(dedupe(candidate.IntentIDs), ap.PreferredIntents)) > 0 {
			score += 10
			factors = append(factors, "Looking for what you usually like")
		}
		explanation = "Based on the profiles you've liked before"
	} else {
		if user.VirtualOnly == candidate.VirtualOnly {
			score += 15
			factors = append(factors, "Same virtual-only preference")
		}
		if user.OpenToMeet == candidate.OpenToMeet {
			score += 15
			factors = append(factors, "Same openness to meeting")
		}
		explanation = "Based on how you both like to connect"
	}

	return CompatibilityDimension{
		Name:        DimensionBehavioral,
		Score:       min(score, 100),
		Weight:      WeightBehavioral,
		Explanation: explanation,
		Factors:     factors,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
