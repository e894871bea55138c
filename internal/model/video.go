package model

import "time"

type VideoStatus string

const (
	VideoProcessing VideoStatus = "processing"
	VideoActive     VideoStatus = "active"
	VideoInactive   VideoStatus = "inactive"
)

// DefaultThumbnail 未上传缩略图时前端使用的渐变背景
const DefaultThumbnail = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"

// Video 视频元数据，媒体文件本身存放在对象存储中
// swagger:model Video
type Video struct {
	UUIDBase
	Title       string      `gorm:"size:255;not null" json:"title"`
	Instructor  string      `gorm:"size:100;not null" json:"instructor"`
	Duration    string      `gorm:"size:50;not null" json:"duration"`
	Provider    string      `gorm:"size:100;not null;index" json:"provider"`
	Grade       string      `gorm:"size:50;not null;index" json:"grade"`
	Subject     string      `gorm:"size:50;not null;index" json:"subject"`
	Description string      `gorm:"type:text" json:"description"`
	Thumbnail   string      `gorm:"size:512" json:"thumbnail"`
	VideoURL    string      `gorm:"size:1024;not null" json:"videoUrl"`
	FileName    string      `gorm:"size:255" json:"fileName"`
	FileSize    int64       `gorm:"default:0" json:"fileSize"`
	Views       int64       `gorm:"default:0" json:"views"`
	Likes       int64       `gorm:"default:0" json:"likes"`
	UploadedBy  string      `gorm:"type:varchar(36);index" json:"uploadedBy"`
	UploadDate  time.Time   `gorm:"index" json:"uploadDate"`
	Status      VideoStatus `gorm:"size:20;default:'active';index" json:"status"`
	Tags        []string    `gorm:"serializer:json;type:text" json:"tags"`
}

func (Video) TableName() string {
	return "videos"
}
