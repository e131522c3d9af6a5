package dating

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/imadgeboyega/kiekky-matching/internal/matching"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Profiles
	GetProfile(ctx context.Context, userID int64) (*matching.Profile, error)
	GetProfiles(ctx context.Context, userIDs []int64) (map[int64]matching.Profile, error)
	GetCandidatePool(ctx context.Context, userID int64, limit int) ([]matching.Profile, error)

	// Views
	CreateView(ctx context.Context, view *matching.ProfileView) error
	GetRecentViews(ctx context.Context, viewerID int64, limit int) ([]matching.ProfileView, error)
	PruneViews(ctx context.Context, viewerID int64, keep int) (int64, error)

	// Conversations
	GetConversationMetrics(ctx context.Context, userID int64) ([]matching.ConversationMetrics, error)

	// Scheduled jobs
	GetActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error)

	// Hotpicks
	CreateHotpick(ctx context.Context, hotpick *Hotpick) error
	GetUserHotpicks(ctx context.Context, userID int64, limit int, unseenOnly bool) ([]*Hotpick, error)
	DeleteExpiredHotpicks(ctx context.Context) (int64, error)
	HasTodayHotpicks(ctx context.Context, userID int64) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `
	p.user_id,
	EXTRACT(YEAR FROM AGE(p.birth_date))::INT AS age,
	p.city, p.bio, p.prompts, p.intent_ids,
	p.relationship_structure, p.pace_preference, p.response_style,
	p.virtual_only, p.open_to_meet, p.photo_count, p.has_voice_intro, p.updated_at,
	q.communication_style, q.jealousy_management, q.time_management,
	q.hierarchy_preference, q.disclosure_level, q.boundary_firmness
`

const profileFrom = `
	FROM matching_profiles p
	LEFT JOIN relationship_quiz_results q ON q.user_id = p.user_id
`

// Profile Methods

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*matching.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + profileFrom + ` WHERE p.user_id = $1`

	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	p, err := row.toProfile()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]matching.Profile, error) {
	profiles := make(map[int64]matching.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	query, args, err := sqlx.In(`SELECT `+profileColumns+profileFrom+` WHERE p.user_id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	for i := range rows {
		p, err := rows[i].toProfile()
		if err != nil {
			return nil, err
		}
		profiles[p.ID] = p
	}
	return profiles, nil
}

// GetCandidatePool returns active profiles the user has not liked or passed on,
// most recently updated first.
func (r *postgresRepository) GetCandidatePool(ctx context.Context, userID int64, limit int) ([]matching.Profile, error) {
	query := `SELECT ` + profileColumns + profileFrom + `
		WHERE p.user_id <> $1
			AND p.is_active = TRUE
			AND NOT EXISTS (
				SELECT 1 FROM profile_views v
				WHERE v.viewer_id = $1
					AND v.viewed_profile_id = p.user_id
					AND v.action IN ('like', 'super_like', 'pass')
			)
		ORDER BY p.updated_at DESC
		LIMIT $2
	`

	var rows []profileRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, err
	}

	pool := make([]matching.Profile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toProfile()
		if err != nil {
			return nil, err
		}
		pool = append(pool, p)
	}
	return pool, nil
}

// View Methods

func (r *postgresRepository) CreateView(ctx context.Context, view *matching.ProfileView) error {
	var snapshot []byte
	if view.Snapshot != nil {
		var err error
		if snapshot, err = json.Marshal(view.Snapshot); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	}

	query := `
		INSERT INTO profile_views (
			id, viewer_id, viewed_profile_id, action, dwell_time_ms, profile_snapshot, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		view.ID, view.ViewerID, view.ViewedProfileID, string(view.Action),
		view.DwellTimeMs, snapshot, view.CreatedAt,
	)
	return err
}

func (r *postgresRepository) GetRecentViews(ctx context.Context, viewerID int64, limit int) ([]matching.ProfileView, error) {
	query := `
		SELECT id, viewer_id, viewed_profile_id, action, dwell_time_ms, profile_snapshot, created_at
		FROM profile_views
		WHERE viewer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var rows []viewRow
	if err := r.db.SelectContext(ctx, &rows, query, viewerID, limit); err != nil {
		return nil, err
	}

	views := make([]matching.ProfileView, 0, len(rows))
	for i := range rows {
		v, err := rows[i].toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// PruneViews keeps only the newest keep views of the viewer
func (r *postgresRepository) PruneViews(ctx context.Context, viewerID int64, keep int) (int64, error) {
	query := `
		DELETE FROM profile_views
		WHERE viewer_id = $1
			AND id NOT IN (
				SELECT id FROM profile_views
				WHERE viewer_id = $1
				ORDER BY created_at DESC
				LIMIT $2
			)
	`

	result, err := r.db.ExecContext(ctx, query, viewerID, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Conversation Methods

func (r *postgresRepository) GetConversationMetrics(ctx context.Context, userID int64) ([]matching.ConversationMetrics, error) {
	query := `
		SELECT conversation_id, user_id, partner_id, messages_sent, messages_received,
			avg_response_time_ms, avg_message_length, met_in_person, connection_quality, updated_at
		FROM conversation_metrics
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	var rows []conversationRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	metrics := make([]matching.ConversationMetrics, len(rows))
	for i := range rows {
		metrics[i] = rows[i].toMetrics()
	}
	return metrics, nil
}

// GetActiveUserIDs returns viewers with activity after since
func (r *postgresRepository) GetActiveUserIDs(ctx context.Context, since time.Time) ([]int64, error) {
	var ids []int64
	query := `
		SELECT DISTINCT v.viewer_id
		FROM profile_views v
		JOIN matching_profiles p ON p.user_id = v.viewer_id AND p.is_active = TRUE
		WHERE v.created_at > $1
		ORDER BY v.viewer_id
	`

	err := r.db.SelectContext(ctx, &ids, query, since)
	return ids, err
}

// Hotpicks Methods

func (r *postgresRepository) CreateHotpick(ctx context.Context, hotpick *Hotpick) error {
	query := `
		INSERT INTO hotpicks (
			user_id, recommended_user_id, score, reason, dimensions, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, recommended_user_id)
		DO UPDATE SET
			score = EXCLUDED.score,
			reason = EXCLUDED.reason,
			dimensions = EXCLUDED.dimensions,
			expires_at = EXCLUDED.expires_at,
			is_seen = FALSE,
			created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(
		ctx, query,
		hotpick.UserID, hotpick.RecommendedUserID,
		hotpick.Score, hotpick.Reason, []byte(hotpick.Dimensions), hotpick.ExpiresAt,
	).Scan(&hotpick.ID, &hotpick.CreatedAt)
}

func (r *postgresRepository) GetUserHotpicks(ctx context.Context, userID int64, limit int, unseenOnly bool) ([]*Hotpick, error) {
	query := `
		SELECT id, user_id, recommended_user_id, score, reason, dimensions,
			is_seen, expires_at, created_at
		FROM hotpicks
		WHERE user_id = $1 AND expires_at > NOW()
	`

	if unseenOnly {
		query += " AND is_seen = FALSE"
	}

	query += " ORDER BY score DESC, created_at DESC LIMIT $2"

	hotpicks := []*Hotpick{}
	err := r.db.SelectContext(ctx, &hotpicks, query, userID, limit)
	return hotpicks, err
}

func (r *postgresRepository) DeleteExpiredHotpicks(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM hotpicks
		WHERE expires_at < NOW() OR created_at < NOW() - INTERVAL '7 days'
	`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresRepository) HasTodayHotpicks(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM hotpicks
			WHERE user_id = $1 AND DATE(created_at) = CURRENT_DATE
		)
	`

	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}
