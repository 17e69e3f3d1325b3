package models

import "time"

// ConversationTurn is one archived message of a successful exchange.
type ConversationTurn struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID string    `json:"session_id" gorm:"type:varchar(255);not null;index"`
	Role      string    `json:"role" gorm:"type:varchar(50);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}

// SessionRecord summarizes a session for the admin listing.
type SessionRecord struct {
	SessionID       string    `json:"session_id" gorm:"type:varchar(255);primaryKey"`
	Turns           int       `json:"turns" gorm:"not null;default:0"`
	LastMessage     string    `json:"last_message" gorm:"type:text"`
	LastMessageRole string    `json:"last_message_role" gorm:"type:varchar(50)"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}
