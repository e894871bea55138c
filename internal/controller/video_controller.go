package controller

import (
	"errors"
	"net/http"
	"strings"

	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/service"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type VideoController struct {
	VideoService *service.VideoService
}

func NewVideoController(videoService *service.VideoService) *VideoController {
	return &VideoController{VideoService: videoService}
}

// VideoListResponse 视频列表
type VideoListResponse struct {
	Videos     []model.Video   `json:"videos"`
	Pagination util.Pagination `json:"pagination"`
}

// VideoSearchResponse 搜索结果
type VideoSearchResponse struct {
	Query   string        `json:"query"`
	Results []model.Video `json:"results"`
	Count   int           `json:"count"`
}

// UploadVideoRequest 上传表单中的元数据字段
// swagger:model UploadVideoRequest
type UploadVideoRequest struct {
	Title       string `form:"title" binding:"required"`
	Instructor  string `form:"instructor" binding:"required"`
	Duration    string `form:"duration" binding:"required"`
	Provider    string `form:"provider" binding:"required"`
	Grade       string `form:"grade" binding:"required"`
	Subject     string `form:"subject" binding:"required"`
	Description string `form:"description"`
	Thumbnail   string `form:"thumbnail"`
	Tags        string `form:"tags"`
	Status      string `form:"status" binding:"omitempty,oneof=processing active inactive"`
}

// UploadVideoResponse 上传成功响应
type UploadVideoResponse struct {
	Message string       `json:"message"`
	Video   *model.Video `json:"video"`
}

// ProgressRequest 观看进度
// swagger:model ProgressRequest
type ProgressRequest struct {
	Progress  *float64 `json:"progress" binding:"required"`
	Completed bool     `json:"completed"`
}

// ProgressResponse 观看进度响应
type ProgressResponse struct {
	Message  string          `json:"message"`
	Progress *model.Progress `json:"progress"`
}

// ListVideos godoc
// @Summary 视频列表
// @Description 仅返回 active 状态视频，按上传时间倒序分页
// @Tags 视频
// @Produce json
// @Param grade query string false "年级"
// @Param subject query string false "科目"
// @Param provider query string false "提供方"
// @Param search query string false "标题/讲师/简介关键字"
// @Param limit query int false "每页数量" default(50)
// @Param page query int false "页码" default(1)
// @Success 200 {object} VideoListResponse
// @Failure 500 {object} util.ErrorResponse
// @Router /api/videos [get]
func (c *VideoController) ListVideos(ctx *gin.Context) {
	filter := repository.VideoFilter{
		Grade:    ctx.Query("grade"),
		Subject:  ctx.Query("subject"),
		Provider: ctx.Query("provider"),
		Search:   ctx.Query("search"),
	}
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), util.DefaultPageLimit)

	videos, pagination, err := c.VideoService.List(ctx.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(ctx, err, "Failed to fetch videos")
		return
	}
	util.Success(ctx, VideoListResponse{Videos: videos, Pagination: pagination})
}

// SearchVideos godoc
// @Summary 搜索视频
// @Description 关键字匹配标题、讲师或简介（不区分大小写），最多 20 条
// @Tags 视频
// @Produce json
// @Param query query string true "关键字"
// @Param grade query string false "年级"
// @Param subject query string false "科目"
// @Success 200 {object} VideoSearchResponse
// @Failure 400 {object} util.ErrorResponse "缺少关键字"
// @Failure 500 {object} util.ErrorResponse
// @Router /api/videos/search [get]
func (c *VideoController) SearchVideos(ctx *gin.Context) {
	query := ctx.Query("query")
	videos, err := c.VideoService.Search(ctx.Request.Context(), query, ctx.Query("grade"), ctx.Query("subject"))
	if err != nil {
		respondError(ctx, err, "Search failed")
		return
	}
	util.Success(ctx, VideoSearchResponse{Query: query, Results: videos, Count: len(videos)})
}

// GetVideo godoc
// @Summary 视频详情
// @Description 每次访问浏览量加一
// @Tags 视频
// @Produce json
// @Param id path string true "视频ID"
// @Success 200 {object} model.Video
// @Failure 404 {object} util.ErrorResponse "视频不存在"
// @Failure 500 {object} util.ErrorResponse
// @Router /api/videos/{id} [get]
func (c *VideoController) GetVideo(ctx *gin.Context) {
	video, err := c.VideoService.View(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Failed to fetch video")
		return
	}
	util.Success(ctx, video)
}

// UploadVideo godoc
// @Summary 上传视频
// @Description 管理员上传视频文件（字段 video，最大 5GB）及元数据
// @Tags 视频
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "视频文件"
// @Param title formData string true "标题"
// @Param instructor formData string true "讲师"
// @Param duration formData string true "时长"
// @Param provider formData string true "提供方"
// @Param grade formData string true "年级"
// @Param subject formData string true "科目"
// @Param description formData string false "简介"
// @Param thumbnail formData string false "缩略图"
// @Param tags formData string false "标签，逗号分隔"
// @Param status formData string false "状态" Enums(processing, active, inactive)
// @Success 201 {object} UploadVideoResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Failure 403 {object} util.ErrorResponse
// @Failure 500 {object} util.ErrorResponse "存储失败"
// @Router /api/videos/upload [post]
func (c *VideoController) UploadVideo(ctx *gin.Context) {
	header, err := ctx.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			util.BadRequest(ctx, util.ErrVideoTooLarge.Error())
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			util.BadRequest(ctx, util.ErrVideoFileRequired.Error())
		default:
			util.BadRequest(ctx, "Invalid multipart form")
		}
		return
	}

	var req UploadVideoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, "Failed to upload video", err)
		return
	}
	defer file.Close()

	video, err := c.VideoService.Upload(ctx.Request.Context(), currentUserID(ctx), service.UploadInput{
		Title:       req.Title,
		Instructor:  req.Instructor,
		Duration:    req.Duration,
		Provider:    req.Provider,
		Grade:       req.Grade,
		Subject:     req.Subject,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Tags:        req.Tags,
		Status:      model.VideoStatus(req.Status),
	}, &service.UploadFile{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	})
	if err != nil {
		var storageErr *service.StorageError
		if errors.As(err, &storageErr) {
			util.LogInternalError(ctx, "Failed to upload video", storageErr.Err)
			return
		}
		respondError(ctx, err, "Failed to upload video")
		return
	}

	util.Created(ctx, UploadVideoResponse{Message: "Video uploaded successfully", Video: video})
}

// UpdateProgress godoc
// @Summary 更新观看进度
// @Description 记录当前用户对视频的观看进度，进度 100 视为完成
// @Tags 视频
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "视频ID"
// @Param body body ProgressRequest true "进度"
// @Success 200 {object} ProgressResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse "视频不存在"
// @Router /api/videos/{id}/progress [put]
func (c *VideoController) UpdateProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, validation.BindingMessage(err))
		return
	}

	progress, err := c.VideoService.RecordProgress(ctx.Request.Context(), currentUserID(ctx), ctx.Param("id"), *req.Progress, req.Completed)
	if err != nil {
		respondError(ctx, err, "Failed to update progress")
		return
	}
	util.Success(ctx, ProgressResponse{Message: "Progress updated successfully", Progress: progress})
}
