// internal/matching/models.go
// Value objects consumed and produced by the matching core

package matching

import "time"

// RelationshipStructure is the shape of relationships a profile is looking for
type RelationshipStructure string

const (
	StructureSoloPoly            RelationshipStructure = "solo_poly"
	StructureHierarchical        RelationshipStructure = "hierarchical"
	StructureNonHierarchical     RelationshipStructure = "non_hierarchical"
	StructureRelationshipAnarchy RelationshipStructure = "relationship_anarchy"
	StructureKitchenTable        RelationshipStructure = "kitchen_table"
	StructureParallel            RelationshipStructure = "parallel"
	StructureVee                 RelationshipStructure = "vee"
	StructureTriad               RelationshipStructure = "triad"
	StructureQuad                RelationshipStructure = "quad"
	StructureOpenCouple          RelationshipStructure = "open_couple"
)

// Pace is how quickly someone likes a connection to progress
type Pace string

const (
	PaceSlow   Pace = "slow"
	PaceMedium Pace = "medium"
	PaceFast   Pace = "fast"
)

// ResponseStyle is how quickly someone tends to reply to messages
type ResponseStyle string

const (
	ResponseImmediate ResponseStyle = "immediate"
	ResponsePrompt    ResponseStyle = "prompt"
	ResponseRelaxed   ResponseStyle = "relaxed"
)

// PromptResponse is a profile prompt and the user's answer
type PromptResponse struct {
	Prompt   string `json:"prompt" yaml:"prompt"`
	Response string `json:"response" yaml:"response"`
}

// QuizResult holds the six Likert (1-5) answers of the relationship quiz
type QuizResult struct {
	CommunicationStyle  int `json:"communication_style" yaml:"communication_style"`
	JealousyManagement  int `json:"jealousy_management" yaml:"jealousy_management"`
	TimeManagement      int `json:"time_management" yaml:"time_management"`
	HierarchyPreference int `json:"hierarchy_preference" yaml:"hierarchy_preference"`
	DisclosureLevel     int `json:"disclosure_level" yaml:"disclosure_level"`
	BoundaryFirmness    int `json:"boundary_firmness" yaml:"boundary_firmness"`
}

// Profile is an immutable snapshot of a user's profile for one scoring call
type Profile struct {
	ID                    int64                 `json:"id" yaml:"id"`
	Age                   int                   `json:"age" yaml:"age"`
	City                  string                `json:"city,omitempty" yaml:"city"`
	Bio                   string                `json:"bio,omitempty" yaml:"bio"`
	Prompts               []PromptResponse      `json:"prompts,omitempty" yaml:"prompts"`
	IntentIDs             []string              `json:"intent_ids,omitempty" yaml:"intent_ids"`
	RelationshipStructure RelationshipStructure `json:"relationship_structure,omitempty" yaml:"relationship_structure"`
	Pace                  Pace                  `json:"pace_preference,omitempty" yaml:"pace_preference"`
	ResponseStyle         ResponseStyle         `json:"response_style,omitempty" yaml:"response_style"`
	VirtualOnly           bool                  `json:"virtual_only" yaml:"virtual_only"`
	OpenToMeet            bool                  `json:"open_to_meet" yaml:"open_to_meet"`
	PhotoCount            int                   `json:"photo_count" yaml:"photo_count"`
	HasVoiceIntro         bool                  `json:"has_voice_intro" yaml:"has_voice_intro"`
	Quiz                  *QuizResult           `json:"quiz,omitempty" yaml:"quiz"`
	UpdatedAt             time.Time             `json:"updated_at" yaml:"updated_at"`
}

// CompatibilityDimension is one weighted component of a CompatibilityScore
type CompatibilityDimension struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Weight      float64  `json:"weight"`
	Explanation string   `json:"explanation"`
	Factors     []string `json:"factors"`
}

// CompatibilityScore is the full six-dimension result for a user/candidate pair
type CompatibilityScore struct {
	UserID               int64                    `json:"user_id"`
	CandidateID          int64                    `json:"candidate_id"`
	OverallScore         int                      `json:"overall_score"`
	Dimensions           []CompatibilityDimension `json:"dimensions"`
	MatchExplanation     string                   `json:"match_explanation"`
	ConversationStarters []string                 `json:"conversation_starters"`
	PotentialChallenges  []string                 `json:"potential_challenges"`
	CalculatedAt         time.Time                `json:"calculated_at"`
}

// Dimension returns the named dimension, or false when it is absent
func (s *CompatibilityScore) Dimension(name string) (CompatibilityDimension, bool) {
	for _, d := range s.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return CompatibilityDimension{}, false
}

// ViewAction is what a viewer did with a profile
type ViewAction string

const (
	ActionView      ViewAction = "view"
	ActionLike      ViewAction = "like"
	ActionSuperLike ViewAction = "super_like"
	ActionPass      ViewAction = "pass"
	ActionMessage   ViewAction = "message"
)

// Valid reports whether the action is one of the known actions
func (a ViewAction) Valid() bool {
	switch a {
	case ActionView, ActionLike, ActionSuperLike, ActionPass, ActionMessage:
		return true
	}
	return false
}

// IsLike reports whether the action expresses attraction
func (a ViewAction) IsLike() bool {
	return a == ActionLike || a == ActionSuperLike
}

// ProfileSnapshot is a denormalized copy of the profile fields needed for
// behavioral analysis, taken when the view happened.
type ProfileSnapshot struct {
	Age                   int                   `json:"age" yaml:"age"`
	City                  string                `json:"city,omitempty" yaml:"city"`
	Bio                   string                `json:"bio,omitempty" yaml:"bio"`
	PhotoCount            int                   `json:"photo_count" yaml:"photo_count"`
	HasVoiceIntro         bool                  `json:"has_voice_intro" yaml:"has_voice_intro"`
	RelationshipStructure RelationshipStructure `json:"relationship_structure,omitempty" yaml:"relationship_structure"`
	IntentIDs             []string              `json:"intent_ids,omitempty" yaml:"intent_ids"`
	Pace                  Pace                  `json:"pace_preference,omitempty" yaml:"pace_preference"`
	ResponseStyle         ResponseStyle         `json:"response_style,omitempty" yaml:"response_style"`
}

// SnapshotOf copies the fields of p that a ProfileView keeps. The result
// shares no memory with p.
func SnapshotOf(p Profile) ProfileSnapshot {
	intents := make([]string, len(p.IntentIDs))
	copy(intents, p.IntentIDs)
	return ProfileSnapshot{
		Age:                   p.Age,
		City:                  p.City,
		Bio:                   p.Bio,
		PhotoCount:            p.PhotoCount,
		HasVoiceIntro:         p.HasVoiceIntro,
		RelationshipStructure: p.RelationshipStructure,
		IntentIDs:             intents,
		Pace:                  p.Pace,
		ResponseStyle:         p.ResponseStyle,
	}
}

// ProfileView is a single interaction event
type ProfileView struct {
	ID              string           `json:"id" yaml:"id"`
	ViewerID        int64            `json:"viewer_id" yaml:"viewer_id"`
	ViewedProfileID int64            `json:"viewed_profile_id" yaml:"viewed_profile_id"`
	Action          ViewAction       `json:"action" yaml:"action"`
	DwellTimeMs     int64            `json:"dwell_time_ms" yaml:"dwell_time_ms"`
	CreatedAt       time.Time        `json:"created_at" yaml:"created_at"`
	Snapshot        *ProfileSnapshot `json:"profile_snapshot,omitempty" yaml:"profile_snapshot"`
}

// ConversationMetrics is the per-thread aggregate kept by messaging
type ConversationMetrics struct {
	ConversationID    int64     `json:"conversation_id" yaml:"conversation_id"`
	UserID            int64     `json:"user_id" yaml:"user_id"`
	PartnerID         int64     `json:"partner_id" yaml:"partner_id"`
	MessagesSent      int       `json:"messages_sent" yaml:"messages_sent"`
	MessagesReceived  int       `json:"messages_received" yaml:"messages_received"`
	AvgResponseTimeMs float64   `json:"avg_response_time_ms" yaml:"avg_response_time_ms"`
	AvgMessageLength  float64   `json:"avg_message_length" yaml:"avg_message_length"`
	MetInPerson       bool      `json:"met_in_person" yaml:"met_in_person"`
	ConnectionQuality float64   `json:"connection_quality" yaml:"connection_quality"`
	UpdatedAt         time.Time `json:"updated_at" yaml:"updated_at"`
}

// AgeRange is an inclusive age interval
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether age falls inside the range
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// BioLength buckets the length of a bio
type BioLength string

const (
	BioShort  BioLength = "short"
	BioMedium BioLength = "medium"
	BioLong   BioLength = "long"
)

// AttractionPatterns is what a user's likes say about their type
type AttractionPatterns struct {
	PreferredAgeRange      AgeRange                `json:"preferred_age_range"`
	AverageLikedAge        int                     `json:"average_liked_age"`
	BioLengthPreference    BioLength               `json:"bio_length_preference"`
	AveragePhotoCount      int                     `json:"average_photo_count"`
	PrefersVoiceIntro      bool                    `json:"prefers_voice_intro"`
	PreferredStructures    []RelationshipStructure `json:"preferred_structures"`
	PreferredIntents       []string                `json:"preferred_intents"`
	ValueKeywords          []string                `json:"value_keywords"`
	ActivityKeywords       []string                `json:"activity_keywords"`
	CommunicationKeywords  []string                `json:"communication_keywords"`
	PreferredPace          Pace                    `json:"preferred_pace"`
	PreferredResponseStyle ResponseStyle           `json:"preferred_response_style"`
}

// BehavioralPatterns is what a user's browsing and messaging say about them
type BehavioralPatterns struct {
	AverageSessionMinutes  float64 `json:"average_session_minutes"`
	ActiveHours            []int   `json:"active_hours"`
	MostActiveDay          string  `json:"most_active_day"`
	AverageViewsPerSession float64 `json:"average_views_per_session"`
	LikeRate               float64 `json:"like_rate"`
	MessageInitiationRate  float64 `json:"message_initiation_rate"`
	MessageLengthStyle     string  `json:"message_length_style"`
	ResponseSpeed          string  `json:"response_speed"`
}

// UserTasteProfile is the fully recomputed summary of a user's implicit preferences
type UserTasteProfile struct {
	UserID             int64              `json:"user_id"`
	AttractionPatterns AttractionPatterns `json:"attraction_patterns"`
	BehavioralPatterns BehavioralPatterns `json:"behavioral_patterns"`
	TotalViews         int                `json:"total_views"`
	TotalLikes         int                `json:"total_likes"`
	TotalConversations int                `json:"total_conversations"`
	ConfidenceScore    float64            `json:"confidence_score"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ScoredProfile is one entry of a ranked candidate list
type ScoredProfile struct {
	Profile Profile `json:"profile"`
	Score   int     `json:"score"`
}

// TasteMatch is the result of checking a profile against a taste profile
type TasteMatch struct {
	Matches bool     `json:"matches"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// MatchInsights is the presentation summary of a CompatibilityScore
type MatchInsights struct {
	Headline   string   `json:"headline"`
	Highlights []string `json:"highlights"`
	Tips       []string `json:"tips"`
}
