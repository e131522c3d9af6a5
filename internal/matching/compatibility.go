// internal/matching/compatibility.go

package matching

import (
	"math"
	"time"
)

// Engine computes six-dimension compatibility scores. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used for CalculatedAt and taste timestamps
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateCompatibility scores candidate against user. taste is optional and
// only changes the behavioral dimension.
func (e *Engine) CalculateCompatibility(user, candidate Profile, taste *UserTasteProfile) CompatibilityScore {
	dimensions := []CompatibilityDimension{
		intentDimension(user, candidate),
		quizDimension(user, candidate),
		structureDimension(user, candidate),
		communicationDimension(user, candidate),
		valuesDimension(user, candidate),
		behavioralDimension(user, candidate, taste),
	}

	score := CompatibilityScore{
		UserID:       user.ID,
		CandidateID:  candidate.ID,
		OverallScore: overallScore(dimensions),
		Dimensions:   dimensions,
		CalculatedAt: e.now(),
	}
	score.MatchExplanation = matchExplanation(dimensions)
	score.ConversationStarters = conversationStarters(&score, candidate)
	score.PotentialChallenges = potentialChallenges(&score)

	return score
}

func overallScore(dimensions []CompatibilityDimension) int {
	total := 0.0
	for _, d := range dimensions {
		total += float64(d.Score) * d.Weight
	}
	return clampInt(int(math.Round(total)), 0, 100)
}
