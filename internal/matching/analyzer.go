// internal/matching/analyzer.go
// Keyword-frequency heuristics over a profile's free text

package matching

import (
	"math"
	"sort"
	"strings"
)

const (
	maxTraits = 5
	maxValues = 5
	maxStyles = 3
)

// Signal is a detected category with a confidence in [0, 1]
type Signal[C ~string] struct {
	Category   C       `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ProfileAnalysis is everything the text analyzer infers from one profile
type ProfileAnalysis struct {
	Traits             []Signal[Trait]             `json:"traits"`
	Values             []Signal[Value]             `json:"values"`
	RelationshipStyles []Signal[RelationshipStyle] `json:"relationship_styles"`
	Interests          []string                    `json:"interests"`
	Tone               string                      `json:"tone"`
	CommunicationStyle string                      `json:"communication_style"`
	GreenFlags         []string                    `json:"green_flags"`
	RedFlags           []string                    `json:"red_flags"`
}

// TopRelationshipStyle returns the highest-confidence style, if any
func (a ProfileAnalysis) TopRelationshipStyle() (RelationshipStyle, bool) {
	if len(a.RelationshipStyles) == 0 {
		return "", false
	}
	return a.RelationshipStyles[0].Category, true
}

// AnalyzeProfile runs every text heuristic over the profile's bio and prompt responses
func AnalyzeProfile(p Profile) ProfileAnalysis {
	text := profileText(p)

	return ProfileAnalysis{
		Traits:             scoreCategories(text, AllTraits, traitKeywords, maxTraits),
		Values:             scoreCategories(text, AllValues, valueKeywords, maxValues),
		RelationshipStyles: scoreCategories(text, AllRelationshipStyles, styleKeywords, maxStyles),
		Interests:          containedTerms(text, interestVocabulary),
		Tone:               firstMatchingLabel(text, toneRules, defaultTone),
		CommunicationStyle: firstMatchingLabel(text, communicationStyleRules, defaultCommunicationStyle),
		GreenFlags:         allMatchingLabels(text, greenFlagRules),
		RedFlags:           allMatchingLabels(text, redFlagRules),
	}
}

// profileText joins the bio and all prompt responses, lower-cased
func profileText(p Profile) string {
	parts := make([]string, 0, len(p.Prompts)+1)
	parts = append(parts, p.Bio)
	for _, pr := range p.Prompts {
		parts = append(parts, pr.Response)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// scoreCategories computes min(matches/keywords*2, 1) for every category,
// drops categories without a match and keeps the strongest limit entries.
// Equal confidences keep declaration order.
func scoreCategories[C ~string](text string, order []C, dict map[C][]string, limit int) []Signal[C] {
	signals := make([]Signal[C], 0, len(order))
	for _, category := range order {
		keywords := dict[category]
		if len(keywords) == 0 {
			continue
		}
		matches := countContained(text, keywords)
		if matches == 0 {
			continue
		}
		confidence := math.Min(float64(matches)/float64(len(keywords))*2, 1)
		signals = append(signals, Signal[C]{Category: category, Confidence: confidence})
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Confidence > signals[j].Confidence
	})

	if len(signals) > limit {
		signals = signals[:limit]
	}
	return signals
}

// extractValues returns every value category with at least one keyword hit
func extractValues(text string) []Value {
	values := make([]Value, 0, len(AllValues))
	for _, v := range AllValues {
		if countContained(text, valueKeywords[v]) > 0 {
			values = append(values, v)
		}
	}
	return values
}

func countContained(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}

// containedTerms returns the terms present in text, in vocabulary order
func containedTerms(text string, vocabulary []string) []string {
	found := make([]string, 0)
	for _, term := range vocabulary {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}

func firstMatchingLabel(text string, rules []markerRule, fallback string) string {
	for _, rule := range rules {
		if countContained(text, rule.phrases) > 0 {
			return rule.label
		}
	}
	return fallback
}

func allMatchingLabels(text string, rules []markerRule) []string {
	labels := make([]string, 0)
	for _, rule := range rules {
		if countContained(text, rule.phrases) > 0 {
			labels = append(labels, rule.label)
		}
	}
	return labels
}
