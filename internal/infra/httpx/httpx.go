package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// DefaultUserAgent 标识本工具；目录 API 不需要伪装浏览器。
const DefaultUserAgent = "iconpipe (+https://github.com/John-Robertt/iconpipe)"

// Transport 把“固定 UA + Accept + 代理”固化为统一策略。
//
// 约束：不做重试、不做退避、不设超时；请求失败就把底层错误原样交给上层。
type Transport struct {
	Base http.RoundTripper

	UserAgent string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	// Clone 会复制 Header 等，避免在 RoundTripper 内部“污染”调用方的 request。
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		ua := t.UserAgent
		if ua == "" {
			ua = DefaultUserAgent
		}
		r.Header.Set("User-Agent", ua)
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}
	return t.Base.RoundTrip(r)
}

// NewClient 构造访问目录 API 的 HTTP client。
//
// 规则：
// - proxyURL 非空：必须走代理
// - proxyURL 为空：沿用环境变量（HTTP_PROXY/HTTPS_PROXY）
func NewClient(proxyURL string) (*http.Client, error) {
	base := http.DefaultTransport.(*http.Transport).Clone()

	proxyURL = strings.TrimSpace(proxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("代理地址必须包含 scheme 与 host")
		}
		base.Proxy = http.ProxyURL(u)
	}

	return &http.Client{
		Transport: &Transport{Base: base, UserAgent: DefaultUserAgent},
	}, nil
}
