package repository

import (
	"context"
	"strings"

	"skypath_backend/internal/model"
	"skypath_backend/internal/util"

	"gorm.io/gorm"
)

// VideoFilter 列表与搜索的公共过滤条件，空字段表示不过滤
type VideoFilter struct {
	Grade    string
	Subject  string
	Provider string
	Search   string
}

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.DB.WithContext(ctx).Create(video).Error
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// IncrementViews 原子自增浏览量，返回受影响行数（0 表示视频不存在）
func (r *VideoRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return res.RowsAffected, res.Error
}

// List 仅返回 active 状态视频，按上传时间倒序分页
func (r *VideoRepository) List(ctx context.Context, filter VideoFilter, page, limit int) ([]model.Video, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Model(&model.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	videos := make([]model.Video, 0)
	offset, ok := util.PageOffset(page, limit)
	if !ok {
		// 页码超出可表示范围，必然没有数据
		return videos, total, nil
	}
	err := query.
		Order("upload_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// Search 关键字搜索，结果条数上限由 limit 控制
func (r *VideoRepository) Search(ctx context.Context, filter VideoFilter, limit int) ([]model.Video, error) {
	videos := make([]model.Video, 0)
	err := r.filtered(ctx, filter).
		Order("upload_date DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

// FindRecommended 按薄弱科目与年级筛选
func (r *VideoRepository) FindRecommended(ctx context.Context, subjects []string, grade string, limit int) ([]model.Video, error) {
	videos := make([]model.Video, 0)
	if len(subjects) == 0 {
		return videos, nil
	}
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.VideoActive).
		Where("subject IN ?", subjects).
		Where("grade = ?", grade).
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *VideoRepository) filtered(ctx context.Context, filter VideoFilter) *gorm.DB {
	query := r.DB.WithContext(ctx).Model(&model.Video{}).Where("status = ?", model.VideoActive)
	if filter.Grade != "" {
		query = query.Where("grade = ?", filter.Grade)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Provider != "" {
		query = query.Where("provider = ?", filter.Provider)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '!' OR LOWER(instructor) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}
	return query
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike 转义 LIKE 通配符，搭配 ESCAPE '!' 使用
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
