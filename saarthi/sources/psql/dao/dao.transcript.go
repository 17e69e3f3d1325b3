package dao

import (
	"context"
	"time"

	"saarthi/saarthi/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TranscriptDAO struct {
	DB *gorm.DB
}

func NewTranscriptDAO(db *gorm.DB) *TranscriptDAO {
	return &TranscriptDAO{DB: db}
}

// SaveTurn appends a turn and bumps the session record in one transaction.
func (dao *TranscriptDAO) SaveTurn(ctx context.Context, sessionID, role, content string) (*models.ConversationTurn, error) {
	turn := models.ConversationTurn{SessionID: sessionID, Role: role, Content: content}
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&turn).Error; err != nil {
			return err
		}
		_, err := upsertSessionRecord(tx, sessionID, role, content, 1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &turn, nil
}

// ArchiveTurn is SaveTurn without the stored row.
func (dao *TranscriptDAO) ArchiveTurn(ctx context.Context, sessionID, role, content string) error {
	_, err := dao.SaveTurn(ctx, sessionID, role, content)
	return err
}

// ListTurnsBySession returns a session's archived turns in insertion order.
func (dao *TranscriptDAO) ListTurnsBySession(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := dao.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&turns).Error
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// UpsertSessionRecord sets the latest message of a session without counting a turn.
func (dao *TranscriptDAO) UpsertSessionRecord(ctx context.Context, sessionID, role, content string) (*models.SessionRecord, error) {
	return upsertSessionRecord(dao.DB.WithContext(ctx), sessionID, role, content, 0)
}

// upsertSessionRecord inserts the record or, when it exists, adds addTurns
// and moves the latest message in a single statement so concurrent archivers
// never lose a count.
func upsertSessionRecord(tx *gorm.DB, sessionID, role, content string, addTurns int) (*models.SessionRecord, error) {
	now := time.Now()
	rec := models.SessionRecord{
		SessionID:       sessionID,
		Turns:           addTurns,
		LastMessage:     content,
		LastMessageRole: role,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"turns":             gorm.Expr("session_records.turns + ?", addTurns),
			"last_message":      content,
			"last_message_role": role,
			"updated_at":        now,
		}),
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}
	var out models.SessionRecord
	if err := tx.Where("session_id = ?", sessionID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecentSessions returns up to limit sessions, most recently active first.
func (dao *TranscriptDAO) ListRecentSessions(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	err := dao.DB.WithContext(ctx).
		Model(&models.SessionRecord{}).
		Order("updated_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteSession removes a session's turns and record.
func (dao *TranscriptDAO) DeleteSession(ctx context.Context, sessionID string) error {
	return dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&models.ConversationTurn{}).Error; err != nil {
			return err
		}
		return tx.Where("session_id = ?", sessionID).Delete(&models.SessionRecord{}).Error
	})
}
