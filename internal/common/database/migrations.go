// internal/common/database/migrations.go
// Schema for the matching tables

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// matchingMigrations are idempotent and run in order on every start
var matchingMigrations = []string{
	`CREATE TABLE IF NOT EXISTS matching_profiles (
		user_id BIGINT PRIMARY KEY,
		birth_date DATE,
		city VARCHAR(100) NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		prompts JSONB NOT NULL DEFAULT '[]',
		intent_ids TEXT[] NOT NULL DEFAULT '{}',
		relationship_structure VARCHAR(50) NOT NULL DEFAULT '',
		pace_preference VARCHAR(20) NOT NULL DEFAULT '',
		response_style VARCHAR(20) NOT NULL DEFAULT '',
		virtual_only BOOLEAN NOT NULL DEFAULT FALSE,
		open_to_meet BOOLEAN NOT NULL DEFAULT TRUE,
		photo_count INTEGER NOT NULL DEFAULT 0,
		has_voice_intro BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS relationship_quiz_results (
		user_id BIGINT PRIMARY KEY REFERENCES matching_profiles(user_id) ON DELETE CASCADE,
		communication_style SMALLINT NOT NULL CHECK (communication_style BETWEEN 1 AND 5),
		jealousy_management SMALLINT NOT NULL CHECK (jealousy_management BETWEEN 1 AND 5),
		time_management SMALLINT NOT NULL CHECK (time_management BETWEEN 1 AND 5),
		hierarchy_preference SMALLINT NOT NULL CHECK (hierarchy_preference BETWEEN 1 AND 5),
		disclosure_level SMALLINT NOT NULL CHECK (disclosure_level BETWEEN 1 AND 5),
		boundary_firmness SMALLINT NOT NULL CHECK (boundary_firmness BETWEEN 1 AND 5),
		completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS profile_views (
		id UUID PRIMARY KEY,
		viewer_id BIGINT NOT NULL,
		viewed_profile_id BIGINT NOT NULL,
		action VARCHAR(20) NOT NULL,
		dwell_time_ms BIGINT NOT NULL DEFAULT 0,
		profile_snapshot JSONB,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_profile_views_viewer ON profile_views(viewer_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS conversation_metrics (
		conversation_id BIGINT NOT NULL,
		user_id BIGINT NOT NULL,
		partner_id BIGINT NOT NULL,
		messages_sent INTEGER NOT NULL DEFAULT 0,
		messages_received INTEGER NOT NULL DEFAULT 0,
		avg_response_time_ms DOUBLE PRECISION NOT NULL DEFAULT 0,
		avg_message_length DOUBLE PRECISION NOT NULL DEFAULT 0,
		met_in_person BOOLEAN NOT NULL DEFAULT FALSE,
		connection_quality DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (conversation_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS hotpicks (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		recommended_user_id BIGINT NOT NULL,
		score INTEGER NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		dimensions JSONB NOT NULL DEFAULT '[]',
		is_seen BOOLEAN NOT NULL DEFAULT FALSE,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, recommended_user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_hotpicks_user ON hotpicks(user_id, score DESC)`,
}

// RunMigrations creates the matching tables. Statements that fail because the
// object already exists are skipped.
func RunMigrations(ctx context.Context, db *sqlx.DB, log *zap.Logger) error {
	for i, stmt := range matchingMigrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			log.Debug("migration skipped", zap.Int("migration", i+1))
		}
	}
	log.Info("migrations applied", zap.Int("count", len(matchingMigrations)))
	return nil
}
