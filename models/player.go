package models

import "gorm.io/gorm"

type Player struct {
	gorm.Model

	PlayID   string `gorm:"uniqueIndex;size:32" json:"play_id"`
	Username string `gorm:"size:64;index:idx_players_web_username,unique" json:"username"`
	WebID    string `gorm:"size:32;index:idx_players_web_username,unique" json:"web_id"`
	Currency string `gorm:"size:8" json:"currency"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
