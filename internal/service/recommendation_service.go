package service

import (
	"context"
	"fmt"

	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/util"
)

// WeakSubjects 返回低于阈值的科目，顺序固定为 국어、수학、영어、과학
func WeakSubjects(scores model.Scores) []string {
	weak := make([]string, 0, 4)
	checks := []struct {
		subject string
		score   int
	}{
		{model.SubjectKorean, scores.Korean},
		{model.SubjectMath, scores.Math},
		{model.SubjectEnglish, scores.English},
		{model.SubjectScience, scores.Science},
	}
	for _, c := range checks {
		if c.score < model.WeakScoreThreshold {
			weak = append(weak, c.subject)
		}
	}
	return weak
}

// Recommendation 推荐结果
type Recommendation struct {
	WeakSubjects    []string      `json:"weakSubjects"`
	Recommendations []model.Video `json:"recommendations"`
}

type RecommendationService struct {
	UserRepo  *repository.UserRepository
	VideoRepo *repository.VideoRepository
}

func NewRecommendationService(userRepo *repository.UserRepository, videoRepo *repository.VideoRepository) *RecommendationService {
	return &RecommendationService{UserRepo: userRepo, VideoRepo: videoRepo}
}

// ForUser 根据当前成绩的薄弱科目和年级推荐视频
func (s *RecommendationService) ForUser(ctx context.Context, userID string) (*Recommendation, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	weak := WeakSubjects(user.Scores)
	rec := &Recommendation{WeakSubjects: weak, Recommendations: make([]model.Video, 0)}
	if len(weak) == 0 {
		return rec, nil
	}

	videos, err := s.VideoRepo.FindRecommended(ctx, weak, user.Grade, util.RecommendationsLimit)
	if err != nil {
		return nil, fmt.Errorf("find recommended videos: %w", err)
	}
	rec.Recommendations = videos
	return rec, nil
}
