package controller

import (
	"skypath_backend/internal/model"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// RegisterRequest defines model for registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Grade    string `json:"grade"`
	School   string `json:"school"`
}

// LoginRequest defines model for login
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSummary 登录/注册返回的用户信息
type UserSummary struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Role         model.UserRole      `json:"role"`
	Grade        string              `json:"grade"`
	School       string              `json:"school"`
	Subscription *model.Subscription `json:"subscription,omitempty"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

func summarize(u *model.User) UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Grade: u.Grade, School: u.School}
}

// Register godoc
// @Summary 注册新用户
// @Description 注册学生账号，成功后直接返回令牌
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "用户注册信息"
// @Success 201 {object} AuthResponse "创建成功"
// @Failure 400 {object} util.ErrorResponse "请求参数错误或邮箱已被注册"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	user, token, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Grade:    req.Grade,
		School:   req.School,
	})
	if err != nil {
		respondError(ctx, err, "Registration failed")
		return
	}

	util.Created(ctx, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    summarize(user),
	})
}

// Login godoc
// @Summary 用户登录
// @Description 邮箱不存在与密码错误返回相同的错误信息
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录信息"
// @Success 200 {object} AuthResponse "登录成功"
// @Failure 400 {object} util.ErrorResponse "请求参数错误"
// @Failure 401 {object} util.ErrorResponse "邮箱或密码错误"
// @Failure 500 {object} util.ErrorResponse "服务器内部错误"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	user, token, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(ctx, err, "Login failed")
		return
	}

	summary := summarize(user)
	summary.Subscription = &user.Subscription
	util.Success(ctx, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    summary,
	})
}
