package util

// MaxPasswordBytes bcrypt 只接受不超过 72 字节的密码
const MaxPasswordBytes = 72

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeOctetStream = "application/octet-stream"

	// MaxVideoSize 单个视频文件上限 5 GiB
	MaxVideoSize int64 = 5 * 1024 * 1024 * 1024
)

// 分页与检索
const (
	DefaultPageLimit     = 50
	SearchResultLimit    = 20
	RecommendationsLimit = 10
)
