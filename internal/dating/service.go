// internal/dating/service.go

package dating

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrCannotScoreSelf = errors.New("cannot score a profile against itself")
	ErrCannotViewSelf  = errors.New("cannot record a view of your own profile")
	ErrInvalidAction   = errors.New("invalid view action")
)

type Service interface {
	// Scoring
	GetCompatibility(ctx context.Context, userID, candidateID int64) (*matching.CompatibilityScore, error)
	GetMatchAnalysis(ctx context.Context, userID, candidateID int64) (*matching.MatchAnalysis, error)
	GetMatchInsights(ctx context.Context, userID, candidateID int64) (*InsightsResponse, error)
	AnalyzeProfile(ctx context.Context, userID int64) (*matching.ProfileAnalysis, error)
	Discover(ctx context.Context, userID int64, params *DiscoverParams) (*DiscoverResponse, error)

	// Views & taste
	RecordProfileView(ctx context.Context, viewerID int64, req *RecordViewRequest) (*RecordViewResponse, error)
	RefreshTasteProfile(ctx context.Context, userID int64) (*matching.UserTasteProfile, error)
	GetTasteProfile(ctx context.Context, userID int64) (*matching.UserTasteProfile, error)
	ResetTasteProfile(ctx context.Context, userID int64) error
	MatchesTasteProfile(ctx context.Context, userID, candidateID int64) (*matching.TasteMatch, error)

	// Hotpicks
	GenerateHotpicks(ctx context.Context, userID int64) ([]*Hotpick, error)
	GetHotpicks(ctx context.Context, userID int64, params *GetHotpicksParams) ([]*Hotpick, error)

	// Scheduled Jobs
	GenerateDailyHotpicks(ctx context.Context) error
	RefreshAllTasteProfiles(ctx context.Context) error
	CleanupExpiredHotpicks(ctx context.Context) error
}

// Notifier pushes realtime events to connected clients
type Notifier interface {
	NotifyTasteUpdated(userID int64, taste matching.UserTasteProfile)
	NotifyHotpicksReady(userID int64, count int)
}

// Settings are the tunables of the service, usually taken from config.Config
type Settings struct {
	ViewWindowSize     int
	CandidatePoolLimit int
	HotpicksPerUser    int
	ScoringWorkers     int
	HotpickTTL         time.Duration
	ActiveWindow       time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.ViewWindowSize <= 0 {
		s.ViewWindowSize = 500
	}
	if s.CandidatePoolLimit <= 0 {
		s.CandidatePoolLimit = 200
	}
	if s.HotpicksPerUser <= 0 {
		s.HotpicksPerUser = 10
	}
	if s.ScoringWorkers <= 0 {
		s.ScoringWorkers = 8
	}
	if s.HotpickTTL <= 0 {
		s.HotpickTTL = 24 * time.Hour
	}
	if s.ActiveWindow <= 0 {
		s.ActiveWindow = 7 * 24 * time.Hour
	}
	return s
}

type service struct {
	repo     Repository
	scores   ScoreCache
	tastes   TasteStore
	notifier Notifier
	engine   *matching.Engine
	settings Settings
	log      *zap.Logger
	now      func() time.Time

	rebuilds singleflight.Group
}

// ServiceOption configures optional collaborators of the service
type ServiceOption func(*service)

func WithScoreCache(cache ScoreCache) ServiceOption {
	return func(s *service) { s.scores = cache }
}

func WithTasteStore(store TasteStore) ServiceOption {
	return func(s *service) { s.tastes = store }
}

func WithNotifier(n Notifier) ServiceOption {
	return func(s *service) { s.notifier = n }
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, engine *matching.Engine, settings Settings, log *zap.Logger, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		scores:   noopScoreCache{},
		tastes:   NewMemoryTasteStore(),
		notifier: noopNotifier{},
		engine:   engine,
		settings: settings.withDefaults(),
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type noopNotifier struct{}

func (noopNotifier) NotifyTasteUpdated(int64, matching.UserTasteProfile) {}
func (noopNotifier) NotifyHotpicksReady(int64, int) {}

// Scoring

func (s *service) loadPair(ctx context.Context, userID, candidateID int64) (*matching.Profile, *matching.Profile, error) {
	if userID == candidateID {
		return nil, nil, ErrCannotScoreSelf
	}

	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load user profile: %w", err)
	}
	candidate, err := s.repo.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, nil, fmt.Errorf("load candidate profile: %w", err)
	}
	return user, candidate, nil
}

// storedTaste returns the user's taste profile, or nil when none is stored.
// Store failures degrade to no personalization.
func (s *service) storedTaste(ctx context.Context, userID int64) *matching.UserTasteProfile {
	taste, err := s.tastes.Get(ctx, userID)
	if err != nil {
		s.log.Warn("taste store read failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	return taste
}

// score computes the full compatibility of candidate for user, going through
// the score cache
func (s *service) score(ctx context.Context, user, candidate matching.Profile, taste *matching.UserTasteProfile) matching.CompatibilityScore {
	key := scoreKey(user, candidate, taste)

	cached, err := s.scores.Get(ctx, key)
	if err != nil {
		s.log.Warn("score cache read failed", zap.String("key", key), zap.Error(err))
	}
	RecordScoreCacheLookup(cached != nil)
	if cached != nil {
		return *cached
	}

	result := s.engine.CalculateCompatibility(user, candidate, taste)
	RecordCompatibilityScore(result.OverallScore)

	if err := s.scores.Set(ctx, key, result); err != nil {
		s.log.Warn("score cache write failed", zap.String("key", key), zap.Error(err))
	}
	return result
}

func (s *service) GetCompatibility(ctx context.Context, userID, candidateID int64) (*matching.CompatibilityScore, error) {
	defer RecordOperationDuration("compatibility", time.Now())

	user, candidate, err := s.loadPair(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	result := s.score(ctx, *user, *candidate, s.storedTaste(ctx, userID))
	return &result, nil
}

func (s *service) GetMatchAnalysis(ctx context.Context, userID, candidateID int64) (*matching.MatchAnalysis, error) {
	user, candidate, err := s.loadPair(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	analysis := matching.AnalyzeProfileCompatibility(*user, *candidate)
	return &analysis, nil
}

func (s *service) GetMatchInsights(ctx context.Context, userID, candidateID int64) (*InsightsResponse, error) {
	user, candidate, err := s.loadPair(ctx, userID, candidateID)
	if err != nil {
		return nil, err
	}

	result := s.score(ctx, *user, *candidate, s.storedTaste(ctx, userID))
	return &InsightsResponse{
		OverallScore: result.OverallScore,
		Reason:       matching.GetMatchReason(result),
		Insights:     matching.GenerateMatchInsights(result, *user, *candidate),
	}, nil
}

func (s *service) AnalyzeProfile(ctx context.Context, userID int64) (*matching.ProfileAnalysis, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	analysis := matching.AnalyzeProfile(*profile)
	return &analysis, nil
}

func (s *service) Discover(ctx context.Context, userID int64, params *DiscoverParams) (*DiscoverResponse, error) {
	defer RecordOperationDuration("discover", time.Now())

	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetCandidatePool(ctx, userID, s.settings.CandidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	ranked := matching.RankProfilesByCompatibility(*user, pool, s.storedTaste(ctx, userID))

	start := min(params.Offset, len(ranked))
	end := min(start+params.Limit, len(ranked))

	return &DiscoverResponse{
		Profiles: ranked[start:end],
		Total:    len(ranked),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}, nil
}

// Views & taste

func (s *service) RecordProfileView(ctx context.Context, viewerID int64, req *RecordViewRequest) (*RecordViewResponse, error) {
	action := matching.ViewAction(req.Action)
	if !action.Valid() {
		return nil, ErrInvalidAction
	}
	if viewerID == req.ViewedProfileID {
		return nil, ErrCannotViewSelf
	}

	viewed, err := s.repo.GetProfile(ctx, req.ViewedProfileID)
	if err != nil {
		return nil, err
	}

	snapshot := matching.SnapshotOf(*viewed)
	view := &matching.ProfileView{
		ID:              uuid.NewString(),
		ViewerID:        viewerID,
		ViewedProfileID: req.ViewedProfileID,
		Action:          action,
		DwellTimeMs:     req.DwellTimeMs,
		CreatedAt:       s.now().UTC(),
		Snapshot:        &snapshot,
	}

	if err := s.repo.CreateView(ctx, view); err != nil {
		return nil, fmt.Errorf("store view: %w", err)
	}
	RecordProfileView(req.Action)

	pruned, err := s.repo.PruneViews(ctx, viewerID, s.settings.ViewWindowSize)
	if err != nil {
		// the view is stored; an oversized window is trimmed on the next call
		s.log.Warn("view pruning failed", zap.Int64("viewer_id", viewerID), zap.Error(err))
	}

	return &RecordViewResponse{ID: view.ID, Pruned: pruned}, nil
}

// RefreshTasteProfile rebuilds the taste profile from scratch. Concurrent
// refreshes of the same user share one rebuild.
func (s *service) RefreshTasteProfile(ctx context.Context, userID int64) (*matching.UserTasteProfile, error) {
	v, err, _ := s.rebuilds.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		return s.rebuildTaste(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	taste := v.(matching.UserTasteProfile)
	return &taste, nil
}

func (s *service) rebuildTaste(ctx context.Context, userID int64) (taste matching.UserTasteProfile, err error) {
	defer RecordOperationDuration("taste_rebuild", time.Now())
	defer func() { RecordTasteRebuild(err, taste.ConfidenceScore) }()

	views, err := s.repo.GetRecentViews(ctx, userID, s.settings.ViewWindowSize)
	if err != nil {
		return taste, fmt.Errorf("load views: %w", err)
	}

	profiles, err := s.repo.GetProfiles(ctx, likedWithoutSnapshot(views))
	if err != nil {
		return taste, fmt.Errorf("load liked profiles: %w", err)
	}

	conversations, err := s.repo.GetConversationMetrics(ctx, userID)
	if err != nil {
		return taste, fmt.Errorf("load conversation metrics: %w", err)
	}

	existing := s.storedTaste(ctx, userID)
	taste = s.engine.BuildTasteProfile(userID, views, profiles, conversations, existing)

	if err := s.tastes.Save(ctx, taste); err != nil {
		return taste, fmt.Errorf("store taste profile: %w", err)
	}

	s.log.Info("taste profile rebuilt",
		zap.Int64("user_id", userID),
		zap.Int("views", taste.TotalViews),
		zap.Float64("confidence", taste.ConfidenceScore),
	)
	s.notifier.NotifyTasteUpdated(userID, taste)
	return taste, nil
}

// likedWithoutSnapshot lists the profiles whose live data is needed to learn
// from likes recorded before snapshots existed
func likedWithoutSnapshot(views []matching.ProfileView) []int64 {
	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, v := range views {
		if v.Action.IsLike() && v.Snapshot == nil && !seen[v.ViewedProfileID] {
			seen[v.ViewedProfileID] = true
			ids = append(ids, v.ViewedProfileID)
		}
	}
	return ids
}

// GetTasteProfile returns the stored profile, or an unsaved default one for
// users without enough history
func (s *service) GetTasteProfile(ctx context.Context, userID int64) (*matching.UserTasteProfile, error) {
	taste, err := s.tastes.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if taste == nil {
		def := matching.DefaultTasteProfile()
		def.UserID = userID
		return &def, nil
	}
	return taste, nil
}

func (s *service) ResetTasteProfile(ctx context.Context, userID int64) error {
	if err := s.tastes.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("taste profile reset", zap.Int64("user_id", userID))
	return nil
}

func (s *service) MatchesTasteProfile(ctx context.Context, userID, candidateID int64) (*matching.TasteMatch, error) {
	if userID == candidateID {
		return nil, ErrCannotScoreSelf
	}

	candidate, err := s.repo.GetProfile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	taste, err := s.GetTasteProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := matching.MatchesTasteProfile(*candidate, *taste)
	return &result, nil
}
