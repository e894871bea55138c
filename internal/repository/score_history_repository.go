package repository

import (
	"context"

	"skypath_backend/internal/model"
	"skypath_backend/internal/util"

	"gorm.io/gorm"
)

type ScoreHistoryRepository struct {
	DB *gorm.DB
}

func NewScoreHistoryRepository(db *gorm.DB) *ScoreHistoryRepository {
	return &ScoreHistoryRepository{DB: db}
}

// CreateAndSync 写入成绩记录；若为该用户最新月份，则同步更新用户当前成绩。
// 同月份已存在时返回 util.ErrScoreDateExists，原记录不变。
func (r *ScoreHistoryRepository) CreateAndSync(ctx context.Context, entry *model.ScoreHistory) (synced bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.ScoreHistory{}).
			Where("user_id = ? AND date = ?", entry.UserID, entry.Date).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return util.ErrScoreDateExists
		}

		if err := tx.Create(entry).Error; err != nil {
			if IsDuplicateKey(err) {
				return util.ErrScoreDateExists
			}
			return err
		}

		// YYYY-MM 格式的字符串比较即时间先后
		var newer int64
		if err := tx.Model(&model.ScoreHistory{}).
			Where("user_id = ? AND date > ?", entry.UserID, entry.Date).
			Count(&newer).Error; err != nil {
			return err
		}
		if newer > 0 {
			return nil
		}

		scores := entry.Scores()
		if err := tx.Model(&model.User{}).
			Where("id = ?", entry.UserID).
			Updates(map[string]interface{}{
				"score_korean":  scores.Korean,
				"score_math":    scores.Math,
				"score_english": scores.English,
				"score_science": scores.Science,
			}).Error; err != nil {
			return err
		}
		synced = true
		return nil
	})
	return synced, err
}

func (r *ScoreHistoryRepository) FindByUser(ctx context.Context, userID string) ([]model.ScoreHistory, error) {
	entries := make([]model.ScoreHistory, 0)
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

// DeleteByUser 物理删除，只删除属于该用户的记录，返回受影响行数
func (r *ScoreHistoryRepository) DeleteByUser(ctx context.Context, id, userID string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ScoreHistory{})
	return res.RowsAffected, res.Error
}
