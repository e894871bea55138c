package service

import (
	"context"
	"fmt"
	"strings"

	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// ProfileInput 资料更新，nil 字段保持不变
type ProfileInput struct {
	Name   *string
	Grade  *string
	School *string
}

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// GetProfile 获取用户资料及观看记录
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByIDWithHistory(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile 更新姓名、年级、学校
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	fields := make(map[string]interface{})
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Grade != nil {
		fields["grade"] = *in.Grade
	}
	if in.School != nil {
		fields["school"] = *in.School
	}

	if len(fields) > 0 {
		// MySQL 对值未变化的行返回 0，存在性由随后的查询判断
		if _, err := s.UserRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return s.findUser(ctx, userID)
}

// ChangePassword 校验当前密码后更新
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateScores 直接覆盖当前成绩
func (s *UserService) UpdateScores(ctx context.Context, userID string, values ScoreValues) (*model.User, error) {
	if err := values.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.UpdateScores(ctx, userID, values.Scores()); err != nil {
		return nil, fmt.Errorf("update scores: %w", err)
	}
	return s.findUser(ctx, userID)
}

func (s *UserService) findUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
