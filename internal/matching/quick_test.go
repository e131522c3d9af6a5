package matching

import "testing"

func TestQuickCompatibilityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		user      Profile
		candidate Profile
		want      int
	}{
		{
			name:      "dealbreaker with no intents",
			want:      20,
			user:      Profile{Pace: PaceFast, RelationshipStructure: StructureTriad},
			candidate: Profile{Pace: PaceFast, RelationshipStructure: StructureTriad},
		},
		{
			name:      "dealbreaker with only blank intents",
			user:      Profile{IntentIDs: []string{""}},
			candidate: Profile{IntentIDs: []string{""}},
			want:      20,
		},
		{
			name:      "dealbreaker with unrelated intents",
			user:      Profile{IntentIDs: []string{"long_term"}, Pace: PaceFast},
			candidate: Profile{IntentIDs: []string{"kink"}, Pace: PaceFast},
			want:      20,
		},
		{
			name:      "overlap found in candidate direction only",
			user:      Profile{IntentIDs: []string{"polyamory"}},
			candidate: Profile{IntentIDs: []string{"long_term"}},
			want:      40,
		},
		{
			name: "everything matches",
			user: Profile{
				IntentIDs: []string{"polyamory", "open", "casual"}, Pace: PaceMedium,
				ResponseStyle: ResponsePrompt, RelationshipStructure: StructureTriad,
			},
			candidate: Profile{
				IntentIDs: []string{"polyamory", "open", "casual"}, Pace: PaceMedium,
				ResponseStyle: ResponsePrompt, RelationshipStructure: StructureTriad,
			},
			want: 95,
		},
		{
			name:      "listed compatible structure",
			user:      Profile{IntentIDs: []string{"open"}, RelationshipStructure: StructureHierarchical},
			candidate: Profile{IntentIDs: []string{"open"}, RelationshipStructure: StructureVee},
			want:      58,
		},
		{
			name:      "unset enums never match",
			user:      Profile{IntentIDs: []string{"open"}},
			candidate: Profile{IntentIDs: []string{"open"}},
			want:      50,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := QuickCompatibilityScore(tt.user, tt.candidate); got != tt.want {
				t.Errorf("QuickCompatibilityScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRankProfilesByCompatibility_StableOrder(t *testing.T) {
	t.Parallel()

	user := Profile{ID: 100, IntentIDs: []string{"open"}}
	candidates := []Profile{
		{ID: 1, IntentIDs: []string{"long_term"}},
		{ID: 2, IntentIDs: []string{"open"}},
		{ID: 3, IntentIDs: []string{"kink"}},
		{ID: 4, IntentIDs: []string{"open"}},
	}

	ranked := RankProfilesByCompatibility(user, candidates, nil)

	wantIDs := []int64{2, 4, 1, 3}
	wantScores := []int{50, 50, 20, 20}
	if len(ranked) != len(wantIDs) {
		t.Fatalf("got %d results, want %d", len(ranked), len(wantIDs))
	}
	for i := range ranked {
		if ranked[i].Profile.ID != wantIDs[i] || ranked[i].Score != wantScores[i] {
			t.Errorf("ranked[%d] = {%d, %d}, want {%d, %d}",
				i, ranked[i].Profile.ID, ranked[i].Score, wantIDs[i], wantScores[i])
		}
	}
}

func TestRankProfilesByCompatibility_Taste(t *testing.T) {
	t.Parallel()

	user := Profile{IntentIDs: []string{"open"}}
	candidates := []Profile{
		{ID: 1, Age: 50, IntentIDs: []string{"open"}},
		{ID: 2, Age: 30, IntentIDs: []string{"open"}, Pace: PaceFast},
	}

	t.Run("low confidence falls back to quick score", func(t *testing.T) {
		t.Parallel()
		taste := UserTasteProfile{ConfidenceScore: 0.2}
		ranked := RankProfilesByCompatibility(user, candidates, &taste)
		if ranked[0].Profile.ID != 1 || ranked[0].Score != 50 {
			t.Errorf("ranked[0] = {%d, %d}, want {1, 50}", ranked[0].Profile.ID, ranked[0].Score)
		}
	})

	t.Run("confident taste blends in", func(t *testing.T) {
		t.Parallel()
		taste := UserTasteProfile{
			ConfidenceScore: 0.9,
			AttractionPatterns: AttractionPatterns{
				PreferredAgeRange: AgeRange{Min: 25, Max: 35},
				PreferredPace:     PaceFast,
			},
		}
		ranked := RankProfilesByCompatibility(user, candidates, &taste)

		// quick 50 for both; taste 70 for #2, 50 for #1
		if ranked[0].Profile.ID != 2 || ranked[0].Score != 56 {
			t.Errorf("ranked[0] = {%d, %d}, want {2, 56}", ranked[0].Profile.ID, ranked[0].Score)
		}
		if ranked[1].Score != 50 {
			t.Errorf("ranked[1].Score = %d, want 50", ranked[1].Score)
		}
	})
}

func TestRankProfilesByCompatibility_NonIncreasing(t *testing.T) {
	t.Parallel()

	user := Profile{IntentIDs: []string{"polyamory", "casual"}, Pace: PaceSlow, RelationshipStructure: StructureKitchenTable}
	intents := [][]string{{"polyamory"}, {"kink"}, {"casual", "open"}, {}, {"solo_poly"}, {"polyamory", "casual"}}
	structures := []RelationshipStructure{StructureTriad, StructureKitchenTable, "", StructureVee}

	candidates := make([]Profile, 0, len(intents)*len(structures))
	for i, in := range intents {
		for j, st := range structures {
			candidates = append(candidates, Profile{ID: int64(i*10 + j), IntentIDs: in, RelationshipStructure: st, Pace: PaceSlow})
		}
	}

	ranked := RankProfilesByCompatibility(user, candidates, nil)
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("scores increase at %d: %d > %d", i, ranked[i].Score, ranked[i-1].Score)
		}
		if ranked[i].Score == ranked[i-1].Score && ranked[i].Profile.ID < ranked[i-1].Profile.ID {
			t.Fatalf("tie at %d lost input order: %d before %d", i, ranked[i-1].Profile.ID, ranked[i].Profile.ID)
		}
	}
}
