package dating

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/matching"
)

// fakeRepository is an in-memory Repository
type fakeRepository struct {
	mu            sync.Mutex
	profiles      map[int64]matching.Profile
	views         []matching.ProfileView
	conversations map[int64][]matching.ConversationMetrics
	hotpicks      []*Hotpick
	activeUsers   []int64
	todayHotpicks map[int64]bool
	poolErr       error
	viewCalls     int
}

func newFakeRepository(profiles ...matching.Profile) *fakeRepository {
	r := &fakeRepository{
		profiles:      make(map[int64]matching.Profile),
		conversations: make(map[int64][]matching.ConversationMetrics),
		todayHotpicks: make(map[int64]bool),
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeRepository) GetProfile(_ context.Context, userID int64) (*matching.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (r *fakeRepository) GetProfiles(_ context.Context, userIDs []int64) (map[int64]matching.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[int64]matching.Profile)
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *fakeRepository) GetCandidatePool(_ context.Context, userID int64, limit int) ([]matching.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poolErr != nil {
		return nil, r.poolErr
	}

	ids := make([]int64, 0, len(r.profiles))
	for id := range r.profiles {
		if id != userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pool := make([]matching.Profile, 0, len(ids))
	for _, id := range ids {
		if len(pool) == limit {
			break
		}
		pool = append(pool, r.profiles[id])
	}
	return pool, nil
}

func (r *fakeRepository) CreateView(_ context.Context, view *matching.ProfileView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.views = append(r.views, *view)
	return nil
}

func (r *fakeRepository) GetRecentViews(_ context.Context, viewerID int64, limit int) ([]matching.ProfileView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.viewCalls++
	out := make([]matching.ProfileView, 0)
	for i := len(r.views) - 1; i >= 0 && len(out) < limit; i-- {
		if r.views[i].ViewerID == viewerID {
			out = append(out, r.views[i])
		}
	}
	return out, nil
}

func (r *fakeRepository) PruneViews(_ context.Context, viewerID int64, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []matching.ProfileView
	var pruned int64
	seen := 0
	for i := len(r.views) - 1; i >= 0; i-- {
		v := r.views[i]
		if v.ViewerID == viewerID {
			seen++
			if seen > keep {
				pruned++
				continue
			}
		}
		kept = append([]matching.ProfileView{v}, kept...)
	}
	r.views = kept
	return pruned, nil
}

func (r *fakeRepository) GetConversationMetrics(_ context.Context, userID int64) ([]matching.ConversationMetrics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conversations[userID], nil
}

func (r *fakeRepository) GetActiveUserIDs(context.Context, time.Time) ([]int64, error) {
	return r.activeUsers, nil
}

func (r *fakeRepository) CreateHotpick(_ context.Context, hotpick *Hotpick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	hotpick.ID = int64(len(r.hotpicks) + 1)
	r.hotpicks = append(r.hotpicks, hotpick)
	r.todayHotpicks[hotpick.UserID] = true
	return nil
}

func (r *fakeRepository) GetUserHotpicks(_ context.Context, userID int64, limit int, unseenOnly bool) ([]*Hotpick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Hotpick, 0)
	for _, h := range r.hotpicks {
		if h.UserID == userID && (!unseenOnly || !h.IsSeen) && len(out) < limit {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeRepository) DeleteExpiredHotpicks(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.hotpicks))
	r.hotpicks = nil
	return n, nil
}

func (r *fakeRepository) HasTodayHotpicks(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.todayHotpicks[userID], nil
}

// memoryScoreCache is a ScoreCache backed by a map
type memoryScoreCache struct {
	mu     sync.Mutex
	scores map[string]matching.CompatibilityScore
}

func newMemoryScoreCache() *memoryScoreCache {
	return &memoryScoreCache{scores: make(map[string]matching.CompatibilityScore)}
}

func (c *memoryScoreCache) Get(_ context.Context, key string) (*matching.CompatibilityScore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.scores[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *memoryScoreCache) Set(_ context.Context, key string, score matching.CompatibilityScore) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scores[key] = score
	return nil
}

// recordingNotifier captures hub events
type recordingNotifier struct {
	mu       sync.Mutex
	tastes   []int64
	hotpicks map[int64]int
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{hotpicks: make(map[int64]int)}
}

func (n *recordingNotifier) NotifyTasteUpdated(userID int64, _ matching.UserTasteProfile) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tastes = append(n.tastes, userID)
}

func (n *recordingNotifier) NotifyHotpicksReady(userID int64, count int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hotpicks[userID] = count
}
