package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/John-Robertt/iconpipe/internal/domain"
)

// DefaultBaseURL 是目录 API 的默认地址。
const DefaultBaseURL = "https://api.phosphoricons.com"

// Query 对应 API 的查询参数；零值字段不会出现在 URL 中。
type Query struct {
	Release string
	// Published 为 nil 表示不过滤；否则发送 published=true/false。
	Published *bool
	Query     string
	Name      string
}

// Values 把 Query 编码为 URL 参数。
func (q Query) Values() url.Values {
	v := url.Values{}
	if s := strings.TrimSpace(q.Release); s != "" {
		v.Set("release", s)
	}
	if q.Published != nil {
		v.Set("published", strconv.FormatBool(*q.Published))
	}
	if s := strings.TrimSpace(q.Query); s != "" {
		v.Set("query", s)
	}
	if s := strings.TrimSpace(q.Name); s != "" {
		v.Set("name", s)
	}
	return v
}

// Client 是目录 API 的最小客户端：一次 GET，一次 JSON 解码。
//
// 约束：不做缓存、不做重试（失败直接返回底层错误）。
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func (c Client) baseURL() string {
	u := strings.TrimSpace(c.BaseURL)
	if u == "" {
		return DefaultBaseURL
	}
	return u
}

// URL 返回带查询参数的完整请求地址。
func (c Client) URL(q Query) string {
	base := c.baseURL()
	enc := q.Values().Encode()
	if enc == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + enc
}

// Fetch 请求目录并解码响应信封（不做任何校验，校验交给 verify）。
func (c Client) Fetch(ctx context.Context, q Query) (domain.APIResponse, error) {
	if c.HTTP == nil {
		return domain.APIResponse{}, errors.New("http client 不能为空")
	}
	u := c.URL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.APIResponse{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.APIResponse{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.APIResponse{}, fmt.Errorf("读取响应失败：%w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.APIResponse{}, &HTTPStatusError{
			URL:        u,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(b),
		}
	}

	return Decode(b)
}

// Decode 解码响应体。空白或 null 响应体返回 ErrNoData。
func Decode(b []byte) (domain.APIResponse, error) {
	if s := strings.TrimSpace(string(b)); s == "" || s == "null" {
		return domain.APIResponse{}, ErrNoData
	}
	var r domain.APIResponse
	if err := json.Unmarshal(b, &r); err != nil {
		return domain.APIResponse{}, fmt.Errorf("解析响应失败：%w", err)
	}
	return r, nil
}

// errorMessage 从错误响应体中尽量提取可读信息；非 JSON 时截取原文。
func errorMessage(b []byte) string {
	if gjson.ValidBytes(b) {
		for _, path := range []string{"message", "error.message", "error"} {
			if r := gjson.GetBytes(b, path); r.Exists() && r.Type == gjson.String {
				return r.String()
			}
		}
		return ""
	}
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
