package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myStorefront/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CREATE TABLE public.session_snapshots (
//     user_id      BIGINT PRIMARY KEY,
//     session_id   TEXT NOT NULL,
//     context      JSONB,
//     events       JSONB,
//     preferences  JSONB,
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

type sessionSnapshotRow struct {
	UserID      uint                                       `gorm:"column:user_id;primaryKey"`
	SessionID   string                                     `gorm:"column:session_id"`
	Context     datatypes.JSONType[domain.SessionContext]  `gorm:"column:context"`
	Events      datatypes.JSONSlice[domain.ActionEvent]    `gorm:"column:events"`
	Preferences datatypes.JSONType[domain.PreferenceModel] `gorm:"column:preferences"`
	UpdatedAt   time.Time                                  `gorm:"column:updated_at"`
}

func (sessionSnapshotRow) TableName() string {
	return "session_snapshots"
}

// SessionRepository persists one snapshot row per user.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) LoadSnapshot(ctx context.Context, userID uint) (*domain.SessionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row sessionSnapshotRow
	err := r.DB.WithContext(ctx).First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session_snapshots: %w", err)
	}

	return &domain.SessionSnapshot{
		SessionID:   row.SessionID,
		UserID:      row.UserID,
		Context:     row.Context.Data(),
		Events:      []domain.ActionEvent(row.Events),
		Preferences: row.Preferences.Data(),
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func (r *SessionRepository) SaveSnapshot(ctx context.Context, snap domain.SessionSnapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	row := sessionSnapshotRow{
		UserID:      snap.UserID,
		SessionID:   snap.SessionID,
		Context:     datatypes.NewJSONType(snap.Context),
		Events:      datatypes.NewJSONSlice(snap.Events),
		Preferences: datatypes.NewJSONType(snap.Preferences),
		UpdatedAt:   snap.UpdatedAt,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert session_snapshots: %w", err)
	}

	return nil
}

func (r *SessionRepository) DeleteSnapshot(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Delete(&sessionSnapshotRow{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}

	return nil
}
