package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skypath_backend/internal/config"
	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/monitoring"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput 注册所需信息
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Grade    string
	School   string
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 创建学生账号并签发令牌
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	email := normalizeEmail(in.Email)

	exists, err := s.UserRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", util.ErrEmailRegistered
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(in.Name),
		Role:     model.Student,
		Grade:    in.Grade,
		School:   in.School,
		Subscription: model.Subscription{
			Plan: model.PlanFree,
		},
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		// 并发注册同一邮箱时由唯一索引兜底
		if repository.IsDuplicateKey(err) {
			return nil, "", util.ErrEmailRegistered
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	monitoring.Registrations.Inc()

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 校验邮箱与密码；邮箱不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.UserRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if repository.IsNotFound(err) {
			monitoring.Logins.WithLabelValues(monitoring.OutcomeFailure).Inc()
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		monitoring.Logins.WithLabelValues(monitoring.OutcomeFailure).Inc()
		return nil, "", util.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, "", err
	}
	monitoring.Logins.WithLabelValues(monitoring.OutcomeSuccess).Inc()
	return user, token, nil
}

// EnsureAdmin 邮箱已注册则提升为管理员，否则创建管理员账号。
// created 表示是否新建了账号。
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) (user *model.User, created bool, err error) {
	email = normalizeEmail(email)

	user, err = s.UserRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.UserRepo.UpdateRole(ctx, user.ID, model.Admin); err != nil {
			return nil, false, fmt.Errorf("upgrade role: %w", err)
		}
		user.Role = model.Admin
		return user, false, nil
	case !repository.IsNotFound(err):
		return nil, false, fmt.Errorf("find user: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user = &model.User{
		Email:        email,
		Password:     hash,
		Name:         strings.TrimSpace(name),
		Role:         model.Admin,
		Subscription: model.Subscription{Plan: model.PlanFree},
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return user, true, nil
}

// HashPassword bcrypt 加密
func HashPassword(password string) (string, error) {
	// 按字节计，多字节字符的密码可能字符数不多但超限
	if len(password) > util.MaxPasswordBytes {
		return "", util.ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
