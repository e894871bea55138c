package controller

import (
	"encoding/json"

	"skypath_backend/internal/model"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ScoreHistoryController struct {
	ScoreHistoryService *service.ScoreHistoryService
}

func NewScoreHistoryController(scoreHistoryService *service.ScoreHistoryService) *ScoreHistoryController {
	return &ScoreHistoryController{ScoreHistoryService: scoreHistoryService}
}

// ScoreFields 四科成绩，数字或数字字符串均可
type ScoreFields struct {
	Korean  *json.Number `json:"korean" swaggertype:"integer"`
	Math    *json.Number `json:"math" swaggertype:"integer"`
	English *json.Number `json:"english" swaggertype:"integer"`
	Science *json.Number `json:"science" swaggertype:"integer"`
}

func (f ScoreFields) values() (service.ScoreValues, error) {
	var v service.ScoreValues
	for _, field := range []struct {
		in  *json.Number
		out **float64
	}{
		{f.Korean, &v.Korean},
		{f.Math, &v.Math},
		{f.English, &v.English},
		{f.Science, &v.Science},
	} {
		if field.in == nil {
			continue
		}
		n, err := field.in.Float64()
		if err != nil {
			return v, util.ErrScoreOutOfRange
		}
		*field.out = &n
	}
	return v, nil
}

// AddScoreHistoryRequest 模拟考试成绩，date 为 YYYY-MM
// swagger:model AddScoreHistoryRequest
type AddScoreHistoryRequest struct {
	Date string `json:"date" example:"2025-03"`
	ScoreFields
}

// ScoreHistoryResponse 新增成功响应
type ScoreHistoryResponse struct {
	Message      string              `json:"message"`
	ScoreHistory *model.ScoreHistory `json:"scoreHistory"`
}

// ScoreHistoryListResponse 成绩记录列表
type ScoreHistoryListResponse struct {
	ScoreHistory []model.ScoreHistory `json:"scoreHistory"`
	Count        int                  `json:"count"`
}

// AddScoreHistory godoc
// @Summary 录入模拟考试成绩
// @Description 同一月份只能录入一次；若为最新月份会同步更新当前成绩
// @Tags 成绩
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddScoreHistoryRequest true "成绩"
// @Success 201 {object} ScoreHistoryResponse
// @Failure 400 {object} util.ErrorResponse "字段缺失、格式错误、分数越界或月份重复"
// @Failure 500 {object} util.ErrorResponse
// @Router /api/users/score-history [post]
func (c *ScoreHistoryController) AddScoreHistory(ctx *gin.Context) {
	var req AddScoreHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}
	values, err := req.values()
	if err != nil {
		respondError(ctx, err, "Failed to add score history")
		return
	}

	entry, err := c.ScoreHistoryService.Add(ctx.Request.Context(), currentUserID(ctx), service.ScoreInput{
		Date:        req.Date,
		ScoreValues: values,
	})
	if err != nil {
		respondError(ctx, err, "Failed to add score history")
		return
	}
	util.Created(ctx, ScoreHistoryResponse{Message: "Score history added successfully", ScoreHistory: entry})
}

// ListScoreHistory godoc
// @Summary 成绩记录列表
// @Description 按月份升序返回当前用户的成绩记录
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ScoreHistoryListResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /api/users/score-history [get]
func (c *ScoreHistoryController) ListScoreHistory(ctx *gin.Context) {
	entries, err := c.ScoreHistoryService.List(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err, "Failed to fetch score history")
		return
	}
	util.Success(ctx, ScoreHistoryListResponse{ScoreHistory: entries, Count: len(entries)})
}

// DeleteScoreHistory godoc
// @Summary 删除成绩记录
// @Description 只能删除自己的记录，他人记录返回 404
// @Tags 成绩
// @Produce json
// @Security BearerAuth
// @Param id path string true "记录ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/users/score-history/{id} [delete]
func (c *ScoreHistoryController) DeleteScoreHistory(ctx *gin.Context) {
	if err := c.ScoreHistoryService.Delete(ctx.Request.Context(), currentUserID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err, "Failed to delete score history")
		return
	}
	util.Message(ctx, "Score history deleted successfully")
}
