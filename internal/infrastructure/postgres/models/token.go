package models

import "time"

type DiscountTokenModel struct {
	Token     string `gorm:"primaryKey"`
	SKU       string
	SessionID string `gorm:"type:uuid;index"`
	Price     float64
	IssuedAt  time.Time
	ExpiresAt time.Time `gorm:"index"`
	Redeemed  bool
}
