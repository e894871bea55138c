package model

import (
	"time"

	"gorm.io/gorm"
)

// ScoreHistory 模拟考试成绩快照，每个用户每个月份（YYYY-MM）最多一条。
// 删除为物理删除，删除后可重新录入同一月份。
// swagger:model ScoreHistory
type ScoreHistory struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_score_history_user_date,priority:1" json:"userId"`
	Date      string    `gorm:"size:7;not null;uniqueIndex:idx_score_history_user_date,priority:2" json:"date"`
	Korean    int       `gorm:"not null" json:"korean"`
	Math      int       `gorm:"not null" json:"math"`
	English   int       `gorm:"not null" json:"english"`
	Science   int       `gorm:"not null" json:"science"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ScoreHistory) TableName() string {
	return "score_histories"
}

// Scores 转换为用户当前成绩
func (s *ScoreHistory) Scores() Scores {
	return Scores{Korean: s.Korean, Math: s.Math, English: s.English, Science: s.Science}
}

func (s *ScoreHistory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = GenerateUUID()
	}
	return nil
}
