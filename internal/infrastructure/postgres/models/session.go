package models

import (
	"time"

	"github.com/IGIHOZO/egura-negotiation-service/internal/domain"
)

type NegotiationSessionModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	SKU           string `gorm:"index:idx_sessions_sku_user"`
	UserID        string `gorm:"index:idx_sessions_sku_user"`
	Segment       string
	Quantity      int
	CurrentRound  int
	MaxRounds     int
	Status        domain.SessionStatus `gorm:"index:idx_sessions_status_expires"`
	HistoryJSON   string               `gorm:"type:jsonb"`
	CreatedAt     time.Time            `gorm:"index"`
	ExpiresAt     time.Time            `gorm:"index:idx_sessions_status_expires"`
	ClosedAt      *time.Time
	FinalPrice    *float64
	DiscountToken string
}
