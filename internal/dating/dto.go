// internal/dating/dto.go
package dating

import "github.com/imadgeboyega/kiekky-matching/internal/matching"

// DTOs for API requests/responses

type RecordViewRequest struct {
	ViewedProfileID int64  `json:"viewed_profile_id" validate:"required,gt=0"`
	Action          string `json:"action" validate:"required,oneof=view like super_like pass message"`
	DwellTimeMs     int64  `json:"dwell_time_ms" validate:"gte=0,lte=3600000"`
}

type DiscoverParams struct {
	Limit  int `json:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" validate:"gte=0"`
}

type GetHotpicksParams struct {
	Limit      int  `json:"limit" validate:"min=1,max=50"`
	UnseenOnly bool `json:"unseen_only"`
}

type DiscoverResponse struct {
	Profiles []matching.ScoredProfile `json:"profiles"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

type InsightsResponse struct {
	OverallScore int                    `json:"overall_score"`
	Reason       string                 `json:"reason"`
	Insights     matching.MatchInsights `json:"insights"`
}

type RecordViewResponse struct {
	ID     string `json:"id"`
	Pruned int64  `json:"pruned"`
}
