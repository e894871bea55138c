package controller

import (
	"context"
	"time"

	"skypath_backend/internal/util"
	"skypath_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version 对外公布的 API 版本
const Version = "2.0.0"

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// HealthResponse 健康检查结果
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
}

// @Summary 健康检查
// @Description 检查服务与数据库状态，数据库不可用时仍返回 200
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := database.Ping(pingCtx, c.DB); err != nil {
		dbStatus = "disconnected"
	}

	util.Success(ctx, HealthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
		Database:  dbStatus,
		Version:   Version,
	})
}

// @Summary 接口索引
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api [get]
func (c *HealthController) Index(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"message": "SKYPATH API v" + Version,
		"endpoints": gin.H{
			"auth": gin.H{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
			},
			"videos": gin.H{
				"list":     "GET /api/videos",
				"search":   "GET /api/videos/search",
				"detail":   "GET /api/videos/:id",
				"upload":   "POST /api/videos/upload (admin)",
				"progress": "PUT /api/videos/:id/progress",
			},
			"user": gin.H{
				"profile":        "GET /api/users/me",
				"updateProfile":  "PUT /api/users/profile",
				"updatePassword": "PUT /api/users/password",
				"updateScores":   "PUT /api/users/scores",
			},
			"scoreHistory": gin.H{
				"add":    "POST /api/users/score-history",
				"list":   "GET /api/users/score-history",
				"delete": "DELETE /api/users/score-history/:id",
			},
			"learning": gin.H{
				"recommendations": "GET /api/recommendations",
			},
			"system": gin.H{
				"health":  "GET /api/health",
				"metrics": "GET /metrics",
				"docs":    "GET /swagger/index.html",
			},
		},
	})
}
