package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 报告格式
const (
	ReportFormatXLSX = "xlsx"
	ReportFormatJSON = "json"

	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TokenHeader 兼容旧客户端的令牌请求头
const TokenHeader = "x-token"

// 请求ID：响应头与 gin.Context 键
const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)
