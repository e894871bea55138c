package service

import (
	"context"
	"errors"
	"fmt"

	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/logger"
	"skypath_backend/pkg/monitoring"
	"skypath_backend/pkg/validation"

	"go.uber.org/zap"
)

// ScoreValues 四科成绩，指针字段用于区分缺失与 0 分，小数截断取整
type ScoreValues struct {
	Korean  *float64 `validate:"required,min=0,max=100"`
	Math    *float64 `validate:"required,min=0,max=100"`
	English *float64 `validate:"required,min=0,max=100"`
	Science *float64 `validate:"required,min=0,max=100"`
}

// Validate 先检查必填再检查范围
func (v ScoreValues) Validate() error {
	return scoreError(validation.ValidateStruct(&v))
}

func (v ScoreValues) Scores() model.Scores {
	return model.Scores{
		Korean:  int(*v.Korean),
		Math:    int(*v.Math),
		English: int(*v.English),
		Science: int(*v.Science),
	}
}

// ScoreInput 模拟考试成绩录入
type ScoreInput struct {
	Date string `validate:"required,period"`
	ScoreValues
}

// Validate 依次检查必填、月份格式、分数范围
func (in ScoreInput) Validate() error {
	return scoreError(validation.ValidateStruct(&in))
}

func scoreError(errs []validation.FieldError) error {
	switch {
	case len(errs) == 0:
		return nil
	case validation.HasTag(errs, "required"):
		return util.ErrScoreFieldsRequired
	case validation.HasTag(errs, "period"):
		return util.ErrInvalidPeriod
	case validation.HasTag(errs, "min", "max"):
		return util.ErrScoreOutOfRange
	default:
		return util.ErrScoreFieldsRequired
	}
}

type ScoreHistoryService struct {
	Repo *repository.ScoreHistoryRepository
}

func NewScoreHistoryService(repo *repository.ScoreHistoryRepository) *ScoreHistoryService {
	return &ScoreHistoryService{Repo: repo}
}

// Add 录入一条成绩，同一用户同一月份只能存在一条
func (s *ScoreHistoryService) Add(ctx context.Context, userID string, in ScoreInput) (*model.ScoreHistory, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	scores := in.Scores()
	entry := &model.ScoreHistory{
		UserID:  userID,
		Date:    in.Date,
		Korean:  scores.Korean,
		Math:    scores.Math,
		English: scores.English,
		Science: scores.Science,
	}
	synced, err := s.Repo.CreateAndSync(ctx, entry)
	if err != nil {
		if errors.Is(err, util.ErrScoreDateExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create score history: %w", err)
	}
	monitoring.ScoreEntries.Inc()
	logger.Log.Debug("Score history recorded",
		zap.String("user_id", userID),
		zap.String("date", entry.Date),
		zap.Bool("current_scores_synced", synced),
	)
	return entry, nil
}

// List 按月份升序
func (s *ScoreHistoryService) List(ctx context.Context, userID string) ([]model.ScoreHistory, error) {
	entries, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list score history: %w", err)
	}
	return entries, nil
}

// Delete 仅能删除自己的记录，他人记录视为不存在
func (s *ScoreHistoryService) Delete(ctx context.Context, userID, id string) error {
	rows, err := s.Repo.DeleteByUser(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete score history: %w", err)
	}
	if rows == 0 {
		return util.ErrScoreHistoryNotFound
	}
	return nil
}
