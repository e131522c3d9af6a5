package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

func testProfiles() []matching.Profile {
	stamp := fixedNow.Add(-time.Hour)
	return []matching.Profile{
		{
			ID: 1, Age: 30, City: "Lagos", Bio: "honest, into hiking and good coffee",
			IntentIDs: []string{"polyamory"}, RelationshipStructure: matching.StructureKitchenTable,
			Pace: matching.PaceMedium, ResponseStyle: matching.ResponsePrompt, UpdatedAt: stamp,
		},
		{
			ID: 2, Age: 29, City: "Lagos", Bio: "honesty first, hiking most weekends",
			IntentIDs: []string{"polyamory"}, RelationshipStructure: matching.StructureKitchenTable,
			Pace: matching.PaceMedium, ResponseStyle: matching.ResponsePrompt, UpdatedAt: stamp,
		},
		{
			ID: 3, Age: 41, City: "Abuja", Bio: "quiet nights in",
			IntentIDs: []string{"monogamy"}, RelationshipStructure: matching.StructureParallel,
			Pace: matching.PaceSlow, UpdatedAt: stamp,
		},
		{
			ID: 4, Age: 33, City: "Lagos", Bio: "coffee and long talks",
			IntentIDs: []string{"polyamory", "open"}, RelationshipStructure: matching.StructureVee,
			Pace: matching.PaceFast, UpdatedAt: stamp,
		},
		{
			ID: 5, Age: 27, Bio: "artist",
			IntentIDs: []string{"casual"}, UpdatedAt: stamp,
		},
	}
}

type testHarness struct {
	svc      Service
	repo     *fakeRepository
	scores   *memoryScoreCache
	tastes   *MemoryTasteStore
	notifier *recordingNotifier
	engine   *matching.Engine
}

func newHarness(settings Settings) *testHarness {
	h := &testHarness{
		repo:     newFakeRepository(testProfiles()...),
		scores:   newMemoryScoreCache(),
		tastes:   NewMemoryTasteStore(),
		notifier: newRecordingNotifier(),
		engine:   matching.NewEngine(matching.WithClock(func() time.Time { return fixedNow })),
	}
	h.svc = NewService(h.repo, h.engine, settings, zap.NewNop(),
		WithScoreCache(h.scores),
		WithTasteStore(h.tastes),
		WithNotifier(h.notifier),
		WithClock(func() time.Time { return fixedNow }),
	)
	return h
}

func TestGetCompatibility(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})
	ctx := context.Background()

	got, err := h.svc.GetCompatibility(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetCompatibility() error = %v", err)
	}

	profiles := testProfiles()
	want := h.engine.CalculateCompatibility(profiles[0], profiles[1], nil)
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("GetCompatibility() = %+v, want %+v", *got, want)
	}
	if len(h.scores.scores) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(h.scores.scores))
	}

	// cached result is returned without recomputation
	if _, err := h.svc.GetCompatibility(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	if len(h.scores.scores) != 1 {
		t.Errorf("cache entries after repeat = %d, want 1", len(h.scores.scores))
	}

	// a profile update changes the cache key
	updated := profiles[1]
	updated.UpdatedAt = fixedNow
	h.repo.profiles[2] = updated
	if _, err := h.svc.GetCompatibility(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	if len(h.scores.scores) != 2 {
		t.Errorf("cache entries after update = %d, want 2", len(h.scores.scores))
	}
}

func TestGetCompatibility_Errors(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})

	tests := []struct {
		name        string
		user, other int64
		want        error
	}{
		{name: "self", user: 1, other: 1, want: ErrCannotScoreSelf},
		{name: "unknown candidate", user: 1, other: 99, want: ErrProfileNotFound},
		{name: "unknown user", user: 99, other: 1, want: ErrProfileNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := h.svc.GetCompatibility(context.Background(), tt.user, tt.other)
			if !errors.Is(err, tt.want) {
				t.Errorf("GetCompatibility() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetMatchInsights(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})

	got, err := h.svc.GetMatchInsights(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("GetMatchInsights() error = %v", err)
	}

	profiles := testProfiles()
	score := h.engine.CalculateCompatibility(profiles[0], profiles[1], nil)
	if got.OverallScore != score.OverallScore {
		t.Errorf("OverallScore = %d, want %d", got.OverallScore, score.OverallScore)
	}
	if got.Reason != matching.GetMatchReason(score) {
		t.Errorf("Reason = %q", got.Reason)
	}
	if !reflect.DeepEqual(got.Insights, matching.GenerateMatchInsights(score, profiles[0], profiles[1])) {
		t.Errorf("Insights = %+v", got.Insights)
	}
}

func TestGetMatchAnalysisAndAnalyzeProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})
	profiles := testProfiles()

	analysis, err := h.svc.GetMatchAnalysis(context.Background(), 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*analysis, matching.AnalyzeProfileCompatibility(profiles[0], profiles[1])) {
		t.Errorf("GetMatchAnalysis() = %+v", analysis)
	}

	own, err := h.svc.AnalyzeProfile(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*own, matching.AnalyzeProfile(profiles[2])) {
		t.Errorf("AnalyzeProfile() = %+v", own)
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})

	tests := []struct {
		name      string
		params    DiscoverParams
		wantCount int
	}{
		{name: "first page", params: DiscoverParams{Limit: 2}, wantCount: 2},
		{name: "second page", params: DiscoverParams{Limit: 3, Offset: 2}, wantCount: 2},
		{name: "past the end", params: DiscoverParams{Limit: 10, Offset: 10}, wantCount: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := h.svc.Discover(context.Background(), 1, &tt.params)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got.Total != 4 {
				t.Errorf("Total = %d, want 4", got.Total)
			}
			if len(got.Profiles) != tt.wantCount {
				t.Errorf("len(Profiles) = %d, want %d", len(got.Profiles), tt.wantCount)
			}
			for i := 1; i < len(got.Profiles); i++ {
				if got.Profiles[i].Score > got.Profiles[i-1].Score {
					t.Errorf("profiles not ordered by score: %v", got.Profiles)
				}
			}
		})
	}

	all, err := h.svc.Discover(context.Background(), 1, &DiscoverParams{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if all.Profiles[0].Profile.ID != 2 {
		t.Errorf("best candidate = %d, want 2", all.Profiles[0].Profile.ID)
	}
}

func TestRecordProfileView(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{ViewWindowSize: 3})
	ctx := context.Background()

	got, err := h.svc.RecordProfileView(ctx, 1, &RecordViewRequest{ViewedProfileID: 2, Action: "like", DwellTimeMs: 4200})
	if err != nil {
		t.Fatalf("RecordProfileView() error = %v", err)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("view ID %q is not a uuid: %v", got.ID, err)
	}

	stored := h.repo.views[0]
	if stored.Action != matching.ActionLike || stored.DwellTimeMs != 4200 || !stored.CreatedAt.Equal(fixedNow) {
		t.Errorf("stored view = %+v", stored)
	}
	if stored.Snapshot == nil || stored.Snapshot.Age != 29 || stored.Snapshot.City != "Lagos" {
		t.Errorf("snapshot = %+v", stored.Snapshot)
	}

	for _, id := range []int64{3, 4, 5} {
		got, err = h.svc.RecordProfileView(ctx, 1, &RecordViewRequest{ViewedProfileID: id, Action: "view"})
		if err != nil {
			t.Fatal(err)
		}
	}
	if got.Pruned != 1 {
		t.Errorf("Pruned = %d, want 1", got.Pruned)
	}
	if len(h.repo.views) != 3 {
		t.Errorf("stored views = %d, want 3", len(h.repo.views))
	}
	if h.repo.views[0].ViewedProfileID != 3 {
		t.Errorf("oldest kept view is for %d, want 3", h.repo.views[0].ViewedProfileID)
	}
}

func TestRecordProfileView_Errors(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})

	tests := []struct {
		name string
		req  RecordViewRequest
		want error
	}{
		{name: "unknown action", req: RecordViewRequest{ViewedProfileID: 2, Action: "wink"}, want: ErrInvalidAction},
		{name: "own profile", req: RecordViewRequest{ViewedProfileID: 1, Action: "view"}, want: ErrCannotViewSelf},
		{name: "missing profile", req: RecordViewRequest{ViewedProfileID: 42, Action: "view"}, want: ErrProfileNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := h.svc.RecordProfileView(context.Background(), 1, &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("RecordProfileView() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRefreshTasteProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		action := "view"
		if i%2 == 0 {
			action = "like"
		}
		id := int64(2 + i%4)
		if _, err := h.svc.RecordProfileView(ctx, 1, &RecordViewRequest{ViewedProfileID: id, Action: action}); err != nil {
			t.Fatal(err)
		}
	}
	h.repo.conversations[1] = []matching.ConversationMetrics{{MessagesSent: 3, MessagesReceived: 2}}

	taste, err := h.svc.RefreshTasteProfile(ctx, 1)
	if err != nil {
		t.Fatalf("RefreshTasteProfile() error = %v", err)
	}
	if taste.UserID != 1 || taste.TotalViews != 12 || taste.TotalLikes != 6 || taste.TotalConversations != 1 {
		t.Errorf("taste totals = %+v", taste)
	}
	if !taste.UpdatedAt.Equal(fixedNow) {
		t.Errorf("UpdatedAt = %v", taste.UpdatedAt)
	}

	stored, _ := h.tastes.Get(ctx, 1)
	if stored == nil || stored.TotalViews != 12 {
		t.Errorf("stored taste = %+v", stored)
	}
	if len(h.notifier.tastes) != 1 || h.notifier.tastes[0] != 1 {
		t.Errorf("taste notifications = %v", h.notifier.tastes)
	}

	// the stored taste now feeds the behavioral dimension
	score, err := h.svc.GetCompatibility(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	profiles := testProfiles()
	want := h.engine.CalculateCompatibility(profiles[0], profiles[1], stored)
	if score.OverallScore != want.OverallScore {
		t.Errorf("OverallScore with taste = %d, want %d", score.OverallScore, want.OverallScore)
	}
}

func TestRefreshTasteProfile_Concurrent(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.svc.RefreshTasteProfile(context.Background(), 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("RefreshTasteProfile() error = %v", err)
	}
	if taste, _ := h.tastes.Get(context.Background(), 1); taste == nil {
		t.Error("taste profile was not stored")
	}
}

func TestTasteProfileLifecycle(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})
	ctx := context.Background()

	taste, err := h.svc.GetTasteProfile(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if taste.UserID != 1 || taste.ConfidenceScore != 0 {
		t.Errorf("default taste = %+v", taste)
	}

	match, err := h.svc.MatchesTasteProfile(ctx, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !match.Matches || match.Score != 50 {
		t.Errorf("low-confidence match = %+v, want matches with score 50", match)
	}

	if _, err := h.svc.MatchesTasteProfile(ctx, 1, 1); !errors.Is(err, ErrCannotScoreSelf) {
		t.Errorf("self match error = %v", err)
	}

	if err := h.tastes.Save(ctx, matching.UserTasteProfile{UserID: 1, ConfidenceScore: 0.9}); err != nil {
		t.Fatal(err)
	}
	if err := h.svc.ResetTasteProfile(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if stored, _ := h.tastes.Get(ctx, 1); stored != nil {
		t.Errorf("taste survived reset: %+v", stored)
	}
}

func TestGenerateHotpicks(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{HotpicksPerUser: 2, ScoringWorkers: 3})

	hotpicks, err := h.svc.GenerateHotpicks(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateHotpicks() error = %v", err)
	}
	if len(hotpicks) != 2 {
		t.Fatalf("len(hotpicks) = %d, want 2", len(hotpicks))
	}
	if hotpicks[0].Score < hotpicks[1].Score {
		t.Errorf("hotpicks not ordered: %d < %d", hotpicks[0].Score, hotpicks[1].Score)
	}
	if hotpicks[0].RecommendedUserID != 2 {
		t.Errorf("top hotpick = %d, want 2", hotpicks[0].RecommendedUserID)
	}

	for _, hp := range hotpicks {
		if hp.Reason == "" {
			t.Errorf("hotpick %d has no reason", hp.RecommendedUserID)
		}
		if !hp.ExpiresAt.Equal(fixedNow.Add(24 * time.Hour)) {
			t.Errorf("ExpiresAt = %v", hp.ExpiresAt)
		}
		var dims []matching.CompatibilityDimension
		if err := json.Unmarshal(hp.Dimensions, &dims); err != nil || len(dims) != 6 {
			t.Errorf("dimensions = %s (%v)", hp.Dimensions, err)
		}
	}

	if h.notifier.hotpicks[1] != 2 {
		t.Errorf("hotpicks notification count = %d, want 2", h.notifier.hotpicks[1])
	}

	stored, err := h.svc.GetHotpicks(context.Background(), 1, &GetHotpicksParams{Limit: 10})
	if err != nil || len(stored) != 2 {
		t.Errorf("GetHotpicks() = %d, %v", len(stored), err)
	}
}

func TestGenerateHotpicks_PoolError(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{})
	h.repo.poolErr = fmt.Errorf("connection reset")

	if _, err := h.svc.GenerateHotpicks(context.Background(), 1); err == nil {
		t.Error("expected pool error to propagate")
	}
}

func TestScheduledJobs(t *testing.T) {
	t.Parallel()

	h := newHarness(Settings{HotpicksPerUser: 1})
	h.repo.activeUsers = []int64{1, 2, 99}
	h.repo.todayHotpicks[2] = true
	ctx := context.Background()

	if err := h.svc.GenerateDailyHotpicks(ctx); err != nil {
		t.Fatalf("GenerateDailyHotpicks() error = %v", err)
	}
	if len(h.repo.hotpicks) != 1 || h.repo.hotpicks[0].UserID != 1 {
		t.Errorf("hotpicks = %+v, want one for user 1", h.repo.hotpicks)
	}

	if err := h.svc.RefreshAllTasteProfiles(ctx); err != nil {
		t.Fatalf("RefreshAllTasteProfiles() error = %v", err)
	}
	for _, id := range []int64{1, 2, 99} {
		if taste, _ := h.tastes.Get(ctx, id); taste == nil {
			t.Errorf("taste for %d not refreshed", id)
		}
	}

	if err := h.svc.CleanupExpiredHotpicks(ctx); err != nil {
		t.Fatal(err)
	}
	if len(h.repo.hotpicks) != 0 {
		t.Errorf("hotpicks after cleanup = %d", len(h.repo.hotpicks))
	}
}
