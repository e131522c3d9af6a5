// internal/dating/recommendations.go

package dating

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerateHotpicks quick-ranks the candidate pool, fully scores the best
// 2*HotpicksPerUser in parallel and stores the top HotpicksPerUser.
func (s *service) GenerateHotpicks(ctx context.Context, userID int64) ([]*Hotpick, error) {
	defer RecordOperationDuration("hotpicks", time.Now())

	user, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.GetCandidatePool(ctx, userID, s.settings.CandidatePoolLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}

	taste := s.storedTaste(ctx, userID)
	shortlist := matching.RankProfilesByCompatibility(*user, pool, taste)
	if n := s.settings.HotpicksPerUser * 2; len(shortlist) > n {
		shortlist = shortlist[:n]
	}

	scores, err := s.scoreAll(ctx, *user, shortlist, taste)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallScore > scores[j].OverallScore
	})
	if len(scores) > s.settings.HotpicksPerUser {
		scores = scores[:s.settings.HotpicksPerUser]
	}

	expiresAt := s.now().Add(s.settings.HotpickTTL)
	hotpicks := make([]*Hotpick, 0, len(scores))
	for _, score := range scores {
		dimensions, err := json.Marshal(score.Dimensions)
		if err != nil {
			return nil, err
		}

		hotpick := &Hotpick{
			UserID:            userID,
			RecommendedUserID: score.CandidateID,
			Score:             score.OverallScore,
			Reason:            matching.GetMatchReason(score),
			Dimensions:        dimensions,
			ExpiresAt:         expiresAt,
		}
		if err := s.repo.CreateHotpick(ctx, hotpick); err != nil {
			return nil, fmt.Errorf("store hotpick: %w", err)
		}
		hotpicks = append(hotpicks, hotpick)
	}

	RecordHotpicks(len(hotpicks))
	if len(hotpicks) > 0 {
		s.notifier.NotifyHotpicksReady(userID, len(hotpicks))
	}
	return hotpicks, nil
}

// scoreAll fully scores the shortlist on at most ScoringWorkers goroutines.
// Results keep the shortlist order.
func (s *service) scoreAll(ctx context.Context, user matching.Profile, shortlist []matching.ScoredProfile, taste *matching.UserTasteProfile) ([]matching.CompatibilityScore, error) {
	scores := make([]matching.CompatibilityScore, len(shortlist))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.ScoringWorkers)
	for i := range shortlist {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = s.score(gctx, user, shortlist[i].Profile, taste)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *service) GetHotpicks(ctx context.Context, userID int64, params *GetHotpicksParams) ([]*Hotpick, error) {
	return s.repo.GetUserHotpicks(ctx, userID, params.Limit, params.UnseenOnly)
}

// Scheduled Jobs

func (s *service) GenerateDailyHotpicks(ctx context.Context) error {
	userIDs, err := s.repo.GetActiveUserIDs(ctx, s.now().Add(-s.settings.ActiveWindow))
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	var generated, failed int
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		hasToday, err := s.repo.HasTodayHotpicks(ctx, userID)
		if err != nil || hasToday {
			continue
		}

		if _, err := s.GenerateHotpicks(ctx, userID); err != nil {
			failed++
			s.log.Warn("hotpick generation failed", zap.Int64("user_id", userID), zap.Error(err))
			continue
		}
		generated++
	}

	s.log.Info("daily hotpicks generated",
		zap.Int("users", len(userIDs)),
		zap.Int("generated", generated),
		zap.Int("failed", failed),
	)
	return nil
}

func (s *service) RefreshAllTasteProfiles(ctx context.Context) error {
	userIDs, err := s.repo.GetActiveUserIDs(ctx, s.now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("list active users: %w", err)
	}

	var failed int
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.RefreshTasteProfile(ctx, userID); err != nil {
			failed++
			s.log.Warn("taste refresh failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	s.log.Info("taste profiles refreshed", zap.Int("users", len(userIDs)), zap.Int("failed", failed))
	return nil
}

func (s *service) CleanupExpiredHotpicks(ctx context.Context) error {
	deleted, err := s.repo.DeleteExpiredHotpicks(ctx)
	if err != nil {
		return err
	}
	s.log.Info("expired hotpicks removed", zap.Int64("count", deleted))
	return nil
}
