package matching

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestBuildTasteProfile(t *testing.T) {
	t.Parallel()

	views := sessionViews()
	conversations := []ConversationMetrics{{MessagesSent: 2, MessagesReceived: 2}, {MessagesSent: 1}}
	created := fixedNow.Add(-72 * time.Hour)

	got := newTestEngine().BuildTasteProfile(7, views, nil, conversations, &UserTasteProfile{CreatedAt: created})

	if got.UserID != 7 {
		t.Errorf("UserID = %d, want 7", got.UserID)
	}
	if got.TotalViews != 10 || got.TotalLikes != 4 || got.TotalConversations != 2 {
		t.Errorf("totals = %d/%d/%d, want 10/4/2", got.TotalViews, got.TotalLikes, got.TotalConversations)
	}
	if got.ConfidenceScore != 0.2 {
		t.Errorf("ConfidenceScore = %v, want 0.2", got.ConfidenceScore)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(fixedNow) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, fixedNow)
	}
	// likes carry no snapshots and no profiles were supplied
	if !reflect.DeepEqual(got.AttractionPatterns, DefaultTasteProfile().AttractionPatterns) {
		t.Errorf("expected default attraction patterns, got %+v", got.AttractionPatterns)
	}
	if got.BehavioralPatterns.MostActiveDay != "Monday" {
		t.Errorf("behavioral patterns not computed: %+v", got.BehavioralPatterns)
	}

	fresh := newTestEngine().BuildTasteProfile(7, nil, nil, nil, nil)
	if !fresh.CreatedAt.Equal(fixedNow) {
		t.Errorf("CreatedAt without existing = %v, want %v", fresh.CreatedAt, fixedNow)
	}
	if fresh.ConfidenceScore != 0 {
		t.Errorf("ConfidenceScore = %v, want 0", fresh.ConfidenceScore)
	}
}

func TestTasteConfidence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		views, conversations int
		want                 float64
	}{
		{0, 0, 0},
		{20, 2, 0.3},
		{33, 0, 0.33},
		{100, 0, 1},
		{400, 50, 1},
	}
	for _, tt := range tests {
		if got := tasteConfidence(tt.views, tt.conversations); got != tt.want {
			t.Errorf("tasteConfidence(%d, %d) = %v, want %v", tt.views, tt.conversations, got, tt.want)
		}
	}

	prev := -1.0
	for signal := 0; signal <= 150; signal++ {
		got := tasteConfidence(signal, 0)
		if got < 0 || got > 1 {
			t.Fatalf("confidence %v out of [0,1] at %d", got, signal)
		}
		if got < prev {
			t.Fatalf("confidence decreased at %d: %v < %v", signal, got, prev)
		}
		prev = got
	}
}

func TestMatchesTasteProfile(t *testing.T) {
	t.Parallel()

	confident := UserTasteProfile{
		ConfidenceScore: 0.8,
		AttractionPatterns: AttractionPatterns{
			PreferredAgeRange:      AgeRange{Min: 25, Max: 35},
			PreferredIntents:       []string{"polyamory", "open"},
			PreferredPace:          PaceFast,
			PreferredResponseStyle: ResponsePrompt,
			BioLengthPreference:    BioMedium,
		},
	}

	tests := []struct {
		name        string
		profile     Profile
		taste       UserTasteProfile
		wantMatches bool
		wantScore   int
		wantReasons int
	}{
		{
			name:        "low confidence always matches",
			profile:     Profile{Age: 80},
			taste:       UserTasteProfile{ConfidenceScore: 0.29, AttractionPatterns: confident.AttractionPatterns},
			wantMatches: true,
			wantScore:   50,
			wantReasons: 1,
		},
		{
			name: "everything lines up",
			profile: Profile{
				Age: 30, IntentIDs: []string{"polyamory", "open", "casual"},
				Pace: PaceFast, ResponseStyle: ResponsePrompt, Bio: strings.Repeat("x", 180),
			},
			taste:       confident,
			wantMatches: true,
			wantScore:   101,
			wantReasons: 6,
		},
		{
			name:        "age and pace only",
			profile:     Profile{Age: 25, Pace: PaceFast},
			taste:       confident,
			wantMatches: true,
			wantScore:   70,
			wantReasons: 2,
		},
		{
			name:        "nothing lines up",
			profile:     Profile{Age: 50, Pace: PaceSlow, ResponseStyle: ResponseRelaxed},
			taste:       confident,
			wantMatches: false,
			wantScore:   50,
			wantReasons: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MatchesTasteProfile(tt.profile, tt.taste)
			if got.Matches != tt.wantMatches || got.Score != tt.wantScore {
				t.Errorf("MatchesTasteProfile() = {%v, %d}, want {%v, %d}", got.Matches, got.Score, tt.wantMatches, tt.wantScore)
			}
			if len(got.Reasons) != tt.wantReasons {
				t.Errorf("Reasons = %v, want %d entries", got.Reasons, tt.wantReasons)
			}
		})
	}
}
