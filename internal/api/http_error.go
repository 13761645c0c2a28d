package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData 表示 API 返回了空响应体。
var ErrNoData = errors.New("API 未返回数据")

// HTTPStatusError 表示 API 返回了非 2xx 的 HTTP 状态码。
// Message 来自响应体 JSON 的 message/error 字段（若有）。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}
