package repository

import (
	"context"

	"skypath_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert 按 (user_id, video_id) 插入或更新观看进度
func (r *ProgressRepository) Upsert(ctx context.Context, progress *model.Progress) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "last_watched_at", "completed"}),
	}).Create(progress).Error
}

func (r *ProgressRepository) Find(ctx context.Context, userID, videoID string) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
