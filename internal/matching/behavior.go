// internal/matching/behavior.go
// Browsing sessions and messaging habits

package matching

import (
	"math"
	"sort"
	"time"
)

const (
	minViewsForBehavior = 10
	sessionGap          = 30 * time.Minute
	maxActiveHours      = 4
)

// Message length and response speed buckets
const (
	MessageLengthConcise  = "concise"
	MessageLengthBalanced = "balanced"
	MessageLengthVerbose  = "verbose"

	ResponseSpeedFast     = "fast"
	ResponseSpeedModerate = "moderate"
	ResponseSpeedSlow     = "slow"
)

// AnalyzeBehavioralPatterns sessionizes the view history and summarizes
// messaging habits. Fewer than ten views yields the defaults.
func AnalyzeBehavioralPatterns(views []ProfileView, conversations []ConversationMetrics) BehavioralPatterns {
	if len(views) < minViewsForBehavior {
		return defaultBehavioralPatterns()
	}

	bp := defaultBehavioralPatterns()

	sorted := make([]ProfileView, len(views))
	copy(sorted, views)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	sessions := sessionize(sorted)
	totalMinutes := 0.0
	for _, s := range sessions {
		totalMinutes += s[len(s)-1].CreatedAt.Sub(s[0].CreatedAt).Minutes()
	}
	bp.AverageSessionMinutes = round2(totalMinutes / float64(len(sessions)))
	bp.AverageViewsPerSession = round2(float64(len(sorted)) / float64(len(sessions)))

	hours := newFrequency[int]()
	days := newFrequency[time.Weekday]()
	for _, v := range sorted {
		hours.add(v.CreatedAt.Hour())
		days.add(v.CreatedAt.Weekday())
	}
	bp.ActiveHours = hours.top(maxActiveHours)
	if top := days.top(1); len(top) == 1 {
		bp.MostActiveDay = top[0].String()
	}

	bp.LikeRate = round2(float64(countLikes(sorted)) / float64(len(sorted)))

	if len(conversations) > 0 {
		applyMessagingPatterns(&bp, conversations)
	}

	return bp
}

// sessionize splits chronologically sorted views wherever consecutive events
// are more than sessionGap apart.
func sessionize(sorted []ProfileView) [][]ProfileView {
	sessions := make([][]ProfileView, 0)
	start := 0
	for i := 1; i < len(sorted); i++ {
		if sorted[i].CreatedAt.Sub(sorted[i-1].CreatedAt) > sessionGap {
			sessions = append(sessions, sorted[start:i])
			start = i
		}
	}
	if len(sorted) > 0 {
		sessions = append(sessions, sorted[start:])
	}
	return sessions
}

func applyMessagingPatterns(bp *BehavioralPatterns, conversations []ConversationMetrics) {
	rateSum, rated := 0.0, 0
	lengthSum, responseSum := 0.0, 0.0

	for _, c := range conversations {
		if total := c.MessagesSent + c.MessagesReceived; total > 0 {
			rateSum += float64(c.MessagesSent) / float64(total)
			rated++
		}
		lengthSum += c.AvgMessageLength
		responseSum += c.AvgResponseTimeMs
	}

	if rated > 0 {
		bp.MessageInitiationRate = round2(rateSum / float64(rated))
	}

	n := float64(len(conversations))
	switch avgLength := lengthSum / n; {
	case avgLength < 50:
		bp.MessageLengthStyle = MessageLengthConcise
	case avgLength > 150:
		bp.MessageLengthStyle = MessageLengthVerbose
	default:
		bp.MessageLengthStyle = MessageLengthBalanced
	}

	switch minutes := responseSum / n / float64(time.Minute/time.Millisecond); {
	case minutes < 30:
		bp.ResponseSpeed = ResponseSpeedFast
	case minutes > 120:
		bp.ResponseSpeed = ResponseSpeedSlow
	default:
		bp.ResponseSpeed = ResponseSpeedModerate
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
