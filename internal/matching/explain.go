// internal/matching/explain.go
// Human-readable narration of a CompatibilityScore

package matching

import (
	"fmt"
	"sort"
	"strings"
)

const (
	strongDimension  = 70
	weakDimension    = 50
	maxHighlights    = 3
	reasonThreshold  = 60
	defaultReason    = "New connection to explore"
	fallbackTip      = "Lead with curiosity and ask open questions."
	fallbackNarrator = "Every connection has room to grow. Explore what you have in common and see where it leads."
)

// rankedDimensions returns a copy of dimensions sorted by score, highest first.
// Equal scores keep the engine's dimension order.
func rankedDimensions(dimensions []CompatibilityDimension) []CompatibilityDimension {
	ranked := make([]CompatibilityDimension, len(dimensions))
	copy(ranked, dimensions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func matchExplanation(dimensions []CompatibilityDimension) string {
	top := rankedDimensions(dimensions)
	if len(top) > 3 {
		top = top[:3]
	}

	strong := 0
	for _, d := range top {
		if d.Score >= strongDimension {
			strong++
		}
	}

	switch {
	case strong >= 2:
		return fmt.Sprintf("Strong %s and %s make this a promising match.",
			strings.ToLower(top[0].Name), strings.ToLower(top[1].Name))
	case strong == 1:
		return fmt.Sprintf("Your %s stands out as a real strength.", strings.ToLower(top[0].Name))
	default:
		return fallbackNarrator
	}
}

func conversationStarters(score *CompatibilityScore, candidate Profile) []string {
	starters := make([]string, 0, maxStarters)

	if d, ok := score.Dimension(DimensionValues); ok && d.Score > 60 && len(d.Factors) > 0 {
		starters = append(starters, fmt.Sprintf(
			"You both value %s. How does that show up in your relationships?", d.Factors[0]))
	}
	if d, ok := score.Dimension(DimensionQuiz); ok && d.Score > 70 {
		starters = append(starters, "Your quiz answers line up closely. Which question was hardest for you to answer?")
	}
	if d, ok := score.Dimension(DimensionStructure); ok && d.Score > 70 {
		starters = append(starters, "You're looking for similar relationship structures. What does your ideal week look like?")
	}
	if s, ok := promptStarter(candidate); ok {
		starters = append(starters, s)
	}

	return padStarters(starters)
}

// potentialChallenges only looks at communication, structure and quiz
func potentialChallenges(score *CompatibilityScore) []string {
	challenges := make([]string, 0, 3)

	if d, ok := score.Dimension(DimensionCommunication); ok && d.Score < weakDimension {
		challenges = append(challenges, "You may have different communication rhythms; talk about texting and pacing expectations early.")
	}
	if d, ok := score.Dimension(DimensionStructure); ok && d.Score < weakDimension {
		challenges = append(challenges, "Your relationship structures differ; be clear about what each of you can offer.")
	}
	if d, ok := score.Dimension(DimensionQuiz); ok && d.Score < weakDimension {
		challenges = append(challenges, "Your quiz answers suggest different approaches to relationship dynamics.")
	}

	return challenges
}

// GenerateMatchInsights summarizes a score for display next to a candidate
func GenerateMatchInsights(score CompatibilityScore, user, candidate Profile) MatchInsights {
	var headline string
	switch {
	case score.OverallScore >= 80:
		headline = "Exceptional match"
	case score.OverallScore >= 65:
		headline = "Strong match"
	case score.OverallScore >= 50:
		headline = "Promising match"
	default:
		headline = "Worth exploring"
	}

	highlights := make([]string, 0, maxHighlights)
	for _, d := range rankedDimensions(score.Dimensions) {
		if len(highlights) == maxHighlights || d.Score < strongDimension {
			break
		}
		highlights = append(highlights, d.Name+": "+d.Explanation)
	}

	tips := make([]string, 0, len(score.PotentialChallenges)+3)
	tips = append(tips, score.PotentialChallenges...)
	if len(candidate.Prompts) > 0 && strings.TrimSpace(candidate.Prompts[0].Response) != "" {
		tips = append(tips, fmt.Sprintf("Ask about their answer to %q.", candidate.Prompts[0].Prompt))
	}
	if city := strings.TrimSpace(user.City); city != "" && strings.EqualFold(city, strings.TrimSpace(candidate.City)) {
		tips = append(tips, fmt.Sprintf("You're both in %s, so suggest a favorite local spot.", city))
	}
	if len(tips) == 0 {
		tips = append(tips, fallbackTip)
	}

	return MatchInsights{
		Headline:   headline,
		Highlights: highlights,
		Tips:       tips,
	}
}

var matchReasons = map[string]string{
	DimensionIntent:        "Looking for the same things",
	DimensionQuiz:          "Similar relationship values from your quiz",
	DimensionStructure:     "Compatible relationship structures",
	DimensionCommunication: "Matching communication style",
	DimensionValues:        "Shared values",
	DimensionBehavioral:    "Fits your type",
}

// GetMatchReason returns a one-line reason taken from the strongest dimension
func GetMatchReason(score CompatibilityScore) string {
	ranked := rankedDimensions(score.Dimensions)
	if len(ranked) == 0 || ranked[0].Score < reasonThreshold {
		return defaultReason
	}
	if reason, ok := matchReasons[ranked[0].Name]; ok {
		return reason
	}
	return defaultReason
}
