// internal/matching/taste_match.go

package matching

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	tasteMatchThreshold = 60
	conversationWeight  = 5
	bioTolerance        = 100
)

// BuildTasteProfile recomputes a user's taste profile from their full view
// window and conversation metrics. It never updates incrementally; existing
// only contributes its CreatedAt.
func (e *Engine) BuildTasteProfile(
	userID int64,
	views []ProfileView,
	profilesByID map[int64]Profile,
	conversations []ConversationMetrics,
	existing *UserTasteProfile,
) UserTasteProfile {
	now := e.now()

	profile := UserTasteProfile{
		UserID:             userID,
		AttractionPatterns: AnalyzeAttractionPatterns(views, profilesByID),
		BehavioralPatterns: AnalyzeBehavioralPatterns(views, conversations),
		TotalViews:         len(views),
		TotalLikes:         countLikes(views),
		TotalConversations: len(conversations),
		ConfidenceScore:    tasteConfidence(len(views), len(conversations)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if existing != nil && !existing.CreatedAt.IsZero() {
		profile.CreatedAt = existing.CreatedAt
	}
	return profile
}

// tasteConfidence weights a conversation as five views, clamped to [0, 1]
func tasteConfidence(views, conversations int) float64 {
	signal := float64(views + conversations*conversationWeight)
	return round2(math.Max(0, math.Min(signal/100, 1)))
}

// MatchesTasteProfile checks a profile against learned preferences. A taste
// profile with low confidence never rejects anyone.
func MatchesTasteProfile(p Profile, taste UserTasteProfile) TasteMatch {
	if taste.ConfidenceScore < MinTasteConfidence {
		return TasteMatch{
			Matches: true,
			Score:   neutralScore,
			Reasons: []string{"Not enough activity yet to personalize"},
		}
	}

	ap := taste.AttractionPatterns
	score := neutralScore
	reasons := make([]string, 0)

	if ap.PreferredAgeRange.Contains(p.Age) {
		score += 10
		reasons = append(reasons, "In your preferred age range")
	}
	for _, intent := range intersectStrings(dedupe(p.IntentIDs), ap.PreferredIntents) {
		score += 8
		reasons = append(reasons, fmt.Sprintf("Looking for %s", titleCase(intent)))
	}
	if p.Pace != "" && p.Pace == ap.PreferredPace {
		score += 10
		reasons = append(reasons, "Matches your preferred pace")
	}
	if p.ResponseStyle != "" && p.ResponseStyle == ap.PreferredResponseStyle {
		score += 10
		reasons = append(reasons, "Matches your preferred response style")
	}
	if mid, ok := bioMidpoints[ap.BioLengthPreference]; ok {
		diff := utf8.RuneCountInString(p.Bio) - mid
		if diff >= -bioTolerance && diff <= bioTolerance {
			score += 5
			reasons = append(reasons, "Bio length you usually like")
		}
	}

	return TasteMatch{
		Matches: score >= tasteMatchThreshold,
		Score:   score,
		Reasons: reasons,
	}
}
