package model

import (
	"time"

	"gorm.io/gorm"
)

// Progress 用户观看某个视频的进度，同时作为用户的观看记录
// swagger:model Progress
type Progress struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID        string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_video,priority:1" json:"userId"`
	VideoID       string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_progress_user_video,priority:2" json:"videoId"`
	Progress      float64   `gorm:"default:0" json:"progress"`
	LastWatchedAt time.Time `json:"lastWatchedAt"`
	Completed     bool      `gorm:"default:false" json:"completed"`
}

func (Progress) TableName() string {
	return "progresses"
}

func (p *Progress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = GenerateUUID()
	}
	return nil
}
