package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"skypath_backend/internal/model"
	"skypath_backend/internal/repository"
	"skypath_backend/internal/util"
	"skypath_backend/pkg/logger"
	"skypath_backend/pkg/monitoring"
	"skypath_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// UploadInput 上传视频的元数据
type UploadInput struct {
	Title       string
	Instructor  string
	Duration    string
	Provider    string
	Grade       string
	Subject     string
	Description string
	Thumbnail   string
	Tags        string
	Status      model.VideoStatus
}

// UploadFile 待上传的文件流
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// StorageError 存储层失败，对外返回 500 并附带原因
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage upload failed: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

type VideoService struct {
	VideoRepo    *repository.VideoRepository
	ProgressRepo *repository.ProgressRepository
	Storage      *StorageService
	now          func() time.Time
}

func NewVideoService(videoRepo *repository.VideoRepository, progressRepo *repository.ProgressRepository, storage *StorageService) *VideoService {
	return &VideoService{
		VideoRepo:    videoRepo,
		ProgressRepo: progressRepo,
		Storage:      storage,
		now:          time.Now,
	}
}

// List 分页列出 active 视频
func (s *VideoService) List(ctx context.Context, filter repository.VideoFilter, page, limit int) ([]model.Video, util.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = util.DefaultPageLimit
	}
	videos, total, err := s.VideoRepo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, util.Pagination{}, fmt.Errorf("list videos: %w", err)
	}
	return videos, util.NewPagination(total, page, limit), nil
}

// Search 关键字必填，最多返回 SearchResultLimit 条
func (s *VideoService) Search(ctx context.Context, query, grade, subject string) ([]model.Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, util.ErrSearchQueryRequired
	}
	videos, err := s.VideoRepo.Search(ctx, repository.VideoFilter{
		Grade:   grade,
		Subject: subject,
		Search:  query,
	}, util.SearchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}
	return videos, nil
}

// View 浏览量加一后返回视频详情
func (s *VideoService) View(ctx context.Context, id string) (*model.Video, error) {
	rows, err := s.VideoRepo.IncrementViews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("increment views: %w", err)
	}
	if rows == 0 {
		return nil, util.ErrVideoNotFound
	}

	video, err := s.VideoRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}
	monitoring.VideoViews.Inc()
	return video, nil
}

// Upload 校验文件后写入对象存储，再创建视频记录
func (s *VideoService) Upload(ctx context.Context, uploaderID string, in UploadInput, file *UploadFile) (*model.Video, error) {
	if file == nil || file.Reader == nil {
		return nil, util.ErrVideoFileRequired
	}
	if file.Size > util.MaxVideoSize {
		return nil, util.ErrVideoTooLarge
	}

	// 嗅探文件头，拒绝明显不是视频的内容
	br := bufio.NewReaderSize(file.Reader, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	sniffed, err := util.ValidateMimeType(bytes.NewReader(head), []string{util.MimeVideo, util.MimeOctetStream})
	if err != nil {
		return nil, util.ErrInvalidVideoContent
	}

	name := util.SanitizeFilename(file.Name)
	key := fmt.Sprintf("videos/%d-%s", s.now().UnixMilli(), name)

	// 客户端声明的类型不是视频时以嗅探结果为准
	contentType := file.ContentType
	if !util.IsVideo(contentType) {
		contentType = sniffed
	}

	spanCtx, span := tracing.StartSpan(ctx, "storage.upload",
		attribute.String("storage.key", key),
		attribute.Int64("storage.size", file.Size),
	)
	url, err := s.Storage.Upload(spanCtx, key, br, file.Size, contentType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		span.End()
		monitoring.VideoUploads.WithLabelValues(monitoring.OutcomeFailure).Inc()
		return nil, &StorageError{Err: err}
	}
	span.End()

	status := in.Status
	if status == "" {
		status = model.VideoActive
	}
	thumbnail := strings.TrimSpace(in.Thumbnail)
	if thumbnail == "" {
		thumbnail = model.DefaultThumbnail
	}

	video := &model.Video{
		Title:       in.Title,
		Instructor:  in.Instructor,
		Duration:    in.Duration,
		Provider:    in.Provider,
		Grade:       in.Grade,
		Subject:     in.Subject,
		Description: in.Description,
		Thumbnail:   thumbnail,
		VideoURL:    url,
		FileName:    file.Name,
		FileSize:    file.Size,
		UploadedBy:  uploaderID,
		UploadDate:  s.now(),
		Status:      status,
		Tags:        ParseTags(in.Tags),
	}
	if err := s.VideoRepo.Create(ctx, video); err != nil {
		monitoring.VideoUploads.WithLabelValues(monitoring.OutcomeFailure).Inc()
		// 记录写入失败时清理已上传的对象
		if delErr := s.Storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			logger.Log.Warn("Failed to remove orphaned object", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create video: %w", err)
	}

	monitoring.VideoUploads.WithLabelValues(monitoring.OutcomeSuccess).Inc()
	monitoring.UploadedBytes.Add(float64(file.Size))
	logger.Log.Info("Video uploaded",
		zap.String("video_id", video.ID),
		zap.String("key", key),
		zap.Int64("size", file.Size),
		zap.String("uploaded_by", uploaderID),
	)
	return video, nil
}

// RecordProgress 记录观看进度，进度达到 100 视为完成
func (s *VideoService) RecordProgress(ctx context.Context, userID, videoID string, progress float64, completed bool) (*model.Progress, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrInvalidProgress
	}
	if _, err := s.VideoRepo.FindByID(ctx, videoID); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrVideoNotFound
		}
		return nil, fmt.Errorf("find video: %w", err)
	}

	record := &model.Progress{
		UserID:        userID,
		VideoID:       videoID,
		Progress:      progress,
		LastWatchedAt: s.now(),
		Completed:     completed || progress >= 100,
	}
	if err := s.ProgressRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	saved, err := s.ProgressRepo.Find(ctx, userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("reload progress: %w", err)
	}
	return saved, nil
}

// ParseTags 逗号分隔，去除空白与空项
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
