package controller

import (
	"skypath_backend/internal/model"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// UserController 当前用户的资料、密码与成绩
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfileRequest 未提供的字段保持不变
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1"`
	Grade  *string `json:"grade"`
	School *string `json:"school"`
}

// ChangePasswordRequest 修改密码
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UpdateScoresRequest 四科成绩均必填，范围 0-100
// swagger:model UpdateScoresRequest
type UpdateScoresRequest struct {
	ScoreFields
}

// UserResponse 带提示信息的用户资料
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// GetMe godoc
// @Summary 获取当前用户
// @Description 返回当前用户资料（不含密码）及观看记录
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse "用户不存在"
// @Router /api/users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	user, err := c.UserService.GetProfile(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err, "Failed to fetch user")
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary 更新资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "资料"
// @Success 200 {object} UserResponse
// @Failure 400 {object} util.ErrorResponse
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	user, err := c.UserService.UpdateProfile(ctx.Request.Context(), currentUserID(ctx), service.ProfileInput{
		Name:   req.Name,
		Grade:  req.Grade,
		School: req.School,
	})
	if err != nil {
		respondError(ctx, err, "Failed to update profile")
		return
	}
	util.Success(ctx, UserResponse{Message: "Profile updated successfully", User: user})
}

// ChangePassword godoc
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "当前密码与新密码"
// @Success 200 {object} util.MessageResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse "当前密码错误"
// @Router /api/users/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	if err := c.UserService.ChangePassword(ctx.Request.Context(), currentUserID(ctx), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(ctx, err, "Failed to change password")
		return
	}
	util.Message(ctx, "Password changed successfully")
}

// UpdateScores godoc
// @Summary 更新当前成绩
// @Description 直接设置四科当前成绩，推荐基于当前成绩计算
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateScoresRequest true "成绩"
// @Success 200 {object} UserResponse
// @Failure 400 {object} util.ErrorResponse
// @Router /api/users/scores [put]
func (c *UserController) UpdateScores(ctx *gin.Context) {
	var req UpdateScoresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}
	values, err := req.values()
	if err != nil {
		respondError(ctx, err, "Failed to update scores")
		return
	}

	user, err := c.UserService.UpdateScores(ctx.Request.Context(), currentUserID(ctx), values)
	if err != nil {
		respondError(ctx, err, "Failed to update scores")
		return
	}
	util.Success(ctx, UserResponse{Message: "Scores updated successfully", User: user})
}
