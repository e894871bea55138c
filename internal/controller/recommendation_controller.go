package controller

import (
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// GetRecommendations godoc
// @Summary 个性化推荐
// @Description 当前成绩低于 80 分的科目为薄弱科目，推荐同年级的相关视频（最多 10 条）
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Recommendation
// @Failure 404 {object} util.ErrorResponse "用户不存在"
// @Failure 500 {object} util.ErrorResponse
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	rec, err := c.RecommendationService.ForUser(ctx.Request.Context(), currentUserID(ctx))
	if err != nil {
		respondError(ctx, err, "Failed to fetch recommendations")
		return
	}
	util.Success(ctx, rec)
}
