// internal/dating/models.go

package dating

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/lib/pq"
)

// profileRow is a matching_profiles row joined with the user's quiz result
type profileRow struct {
	UserID                int64          `db:"user_id"`
	Age                   sql.NullInt64  `db:"age"`
	City                  string         `db:"city"`
	Bio                   string         `db:"bio"`
	Prompts               []byte         `db:"prompts"`
	IntentIDs             pq.StringArray `db:"intent_ids"`
	RelationshipStructure string         `db:"relationship_structure"`
	PacePreference        string         `db:"pace_preference"`
	ResponseStyle         string         `db:"response_style"`
	VirtualOnly           bool           `db:"virtual_only"`
	OpenToMeet            bool           `db:"open_to_meet"`
	PhotoCount            int            `db:"photo_count"`
	HasVoiceIntro         bool           `db:"has_voice_intro"`
	UpdatedAt             time.Time      `db:"updated_at"`

	CommunicationStyle  sql.NullInt64 `db:"communication_style"`
	JealousyManagement  sql.NullInt64 `db:"jealousy_management"`
	TimeManagement      sql.NullInt64 `db:"time_management"`
	HierarchyPreference sql.NullInt64 `db:"hierarchy_preference"`
	DisclosureLevel     sql.NullInt64 `db:"disclosure_level"`
	BoundaryFirmness    sql.NullInt64 `db:"boundary_firmness"`
}

func (r *profileRow) toProfile() (matching.Profile, error) {
	p := matching.Profile{
		ID:                    r.UserID,
		Age:                   int(r.Age.Int64),
		City:                  r.City,
		Bio:                   r.Bio,
		IntentIDs:             []string(r.IntentIDs),
		RelationshipStructure: matching.RelationshipStructure(r.RelationshipStructure),
		Pace:                  matching.Pace(r.PacePreference),
		ResponseStyle:         matching.ResponseStyle(r.ResponseStyle),
		VirtualOnly:           r.VirtualOnly,
		OpenToMeet:            r.OpenToMeet,
		PhotoCount:            r.PhotoCount,
		HasVoiceIntro:         r.HasVoiceIntro,
		UpdatedAt:             r.UpdatedAt,
	}

	if len(r.Prompts) > 0 {
		if err := json.Unmarshal(r.Prompts, &p.Prompts); err != nil {
			return matching.Profile{}, fmt.Errorf("decode prompts for user %d: %w", r.UserID, err)
		}
	}

	// quiz columns come from a LEFT JOIN and are all null without a result
	if r.CommunicationStyle.Valid {
		p.Quiz = &matching.QuizResult{
			CommunicationStyle:  int(r.CommunicationStyle.Int64),
			JealousyManagement:  int(r.JealousyManagement.Int64),
			TimeManagement:      int(r.TimeManagement.Int64),
			HierarchyPreference: int(r.HierarchyPreference.Int64),
			DisclosureLevel:     int(r.DisclosureLevel.Int64),
			BoundaryFirmness:    int(r.BoundaryFirmness.Int64),
		}
	}

	return p, nil
}

// viewRow is a profile_views row
type viewRow struct {
	ID              string    `db:"id"`
	ViewerID        int64     `db:"viewer_id"`
	ViewedProfileID int64     `db:"viewed_profile_id"`
	Action          string    `db:"action"`
	DwellTimeMs     int64     `db:"dwell_time_ms"`
	Snapshot        []byte    `db:"profile_snapshot"`
	CreatedAt       time.Time `db:"created_at"`
}

func (r *viewRow) toView() (matching.ProfileView, error) {
	v := matching.ProfileView{
		ID:              r.ID,
		ViewerID:        r.ViewerID,
		ViewedProfileID: r.ViewedProfileID,
		Action:          matching.ViewAction(r.Action),
		DwellTimeMs:     r.DwellTimeMs,
		CreatedAt:       r.CreatedAt,
	}
	if len(r.Snapshot) > 0 {
		var snap matching.ProfileSnapshot
		if err := json.Unmarshal(r.Snapshot, &snap); err != nil {
			return matching.ProfileView{}, fmt.Errorf("decode snapshot for view %s: %w", r.ID, err)
		}
		v.Snapshot = &snap
	}
	return v, nil
}

// conversationRow is a conversation_metrics row seen from user_id's side
type conversationRow struct {
	ConversationID    int64     `db:"conversation_id"`
	UserID            int64     `db:"user_id"`
	PartnerID         int64     `db:"partner_id"`
	MessagesSent      int       `db:"messages_sent"`
	MessagesReceived  int       `db:"messages_received"`
	AvgResponseTimeMs float64   `db:"avg_response_time_ms"`
	AvgMessageLength  float64   `db:"avg_message_length"`
	MetInPerson       bool      `db:"met_in_person"`
	ConnectionQuality float64   `db:"connection_quality"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r *conversationRow) toMetrics() matching.ConversationMetrics {
	return matching.ConversationMetrics{
		ConversationID:    r.ConversationID,
		UserID:            r.UserID,
		PartnerID:         r.PartnerID,
		MessagesSent:      r.MessagesSent,
		MessagesReceived:  r.MessagesReceived,
		AvgResponseTimeMs: r.AvgResponseTimeMs,
		AvgMessageLength:  r.AvgMessageLength,
		MetInPerson:       r.MetInPerson,
		ConnectionQuality: r.ConnectionQuality,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Hotpick is a precomputed daily recommendation
type Hotpick struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"user_id" db:"user_id"`
	RecommendedUserID int64           `json:"recommended_user_id" db:"recommended_user_id"`
	Score             int             `json:"score" db:"score"`
	Reason            string          `json:"reason" db:"reason"`
	Dimensions        json.RawMessage `json:"dimensions" db:"dimensions"`
	IsSeen            bool            `json:"is_seen" db:"is_seen"`
	ExpiresAt         time.Time       `json:"expires_at" db:"expires_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}
