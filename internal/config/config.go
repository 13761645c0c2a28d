package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tidwall/gjson"

	"github.com/John-Robertt/iconpipe/internal/domain"
)

const (
	// ErrCodeInvalid 表示配置无法读取/解析，或字段不合法。
	ErrCodeInvalid = domain.ErrCodeConfigInvalid
	// ErrCodeMissingVersion 表示任何来源都没有给出发布号。
	ErrCodeMissingVersion = domain.ErrCodeConfigMissingVersion
)

const (
	FileName    = "iconpipe.json"
	DotEnvName  = ".env"
	PackageJSON = "package.json"

	DefaultAPIURL      = "https://api.phosphoricons.com"
	DefaultAssetsPath  = "assets"
	DefaultCatalogPath = "src/icons.ts"
	DefaultConcurrency = 8
	MaxConcurrency     = 64
)

// FileConfig 对应 iconpipe.json 的解析结构。所有字段可选。
type FileConfig struct {
	APIURL      string       `json:"api_url"`
	AssetsPath  string       `json:"assets_path"`
	CatalogPath string       `json:"catalog_path"`
	Version     string       `json:"version"`
	Concurrency int          `json:"concurrency"`
	Proxy       *ProxyConfig `json:"proxy"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EnvConfig 是环境变量层。.env 中的值垫在进程环境之下。
type EnvConfig struct {
	APIURL      string `env:"ICONPIPE_API_URL"`
	AssetsPath  string `env:"ICONPIPE_ASSETS_PATH"`
	CatalogPath string `env:"ICONPIPE_CATALOG_PATH"`
	Version     string `env:"ICONPIPE_VERSION"`
	Concurrency int    `env:"ICONPIPE_CONCURRENCY"`
	ProxyURL    string `env:"ICONPIPE_PROXY_URL"`
}

// EffectiveConfig 是合并并规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	Root string

	AssetsPath  string
	CatalogPath string
	APIURL      string

	// Release 是原始发布号字符串（例如 "2.1.0"），Version 是它的数值形态。
	Release string
	Version domain.NumericVersion

	ProxyURL    string
	Concurrency int
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingVersion:
		return fmt.Sprintf("%s：未找到发布号（%s 的 version、%s 的 version 或 ICONPIPE_VERSION）", e.Code, PackageJSON, FileName)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：%q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：%q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 cwd 下的配置来源并合并为最终配置。
//
// 覆盖优先级（固定）：环境变量 > iconpipe.json > package.json（仅 version）> 默认值。
// .env 只补充进程环境中没有的变量。相对路径一律以 cwd 为基准。
func LoadEffective(cwd string) (EffectiveConfig, error) {
	root, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(root, FileName)
	fc, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	envPath := filepath.Join(root, DotEnvName)
	ec, err := readEnv(envPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: envPath, Err: err}
	}

	pkgPath := filepath.Join(root, PackageJSON)
	pkgVersion, err := readPackageVersion(pkgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: pkgPath, Err: err}
	}

	return merge(root, fc, ec, pkgVersion, cfgPath)
}

func merge(root string, fc FileConfig, ec EnvConfig, pkgVersion, cfgPath string) (EffectiveConfig, error) {
	release := first(ec.Version, fc.Version, pkgVersion)
	if release == "" {
		return EffectiveConfig{}, &Error{Code: ErrCodeMissingVersion, Path: cfgPath}
	}
	version, err := domain.ParseRelease(release)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	apiURL := first(ec.APIURL, fc.APIURL, DefaultAPIURL)
	if err := validateHTTPURL(apiURL); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("api_url 无效：%w", err)}
	}

	fileProxy := ""
	if fc.Proxy != nil {
		fileProxy = fc.Proxy.URL
	}
	proxyURL := first(ec.ProxyURL, fileProxy)
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("proxy.url 无效：%w", err)}
		}
	}

	concurrency := ec.Concurrency
	if concurrency == 0 {
		concurrency = fc.Concurrency
	}
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	// 超出 [1, MaxConcurrency] 截断。
	concurrency = max(1, min(concurrency, MaxConcurrency))

	return EffectiveConfig{
		Root:        root,
		AssetsPath:  absCleanFrom(root, first(ec.AssetsPath, fc.AssetsPath, DefaultAssetsPath)),
		CatalogPath: absCleanFrom(root, first(ec.CatalogPath, fc.CatalogPath, DefaultCatalogPath)),
		APIURL:      apiURL,
		Release:     release,
		Version:     version,
		ProxyURL:    proxyURL,
		Concurrency: concurrency,
	}, nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("必须是 http/https：%q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("缺少 host：%q", raw)
	}
	return nil
}

// first 返回第一个非空（去空白后）的值。
func first(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件；文件不存在不算错误。
func readFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}

// readEnv 把 .env（可选）与进程环境合并后解析到 EnvConfig；进程环境优先。
func readEnv(dotenvPath string) (EnvConfig, error) {
	vars := make(map[string]string)
	fileVars, err := godotenv.Read(dotenvPath)
	switch {
	case err == nil:
		maps.Copy(vars, fileVars)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return EnvConfig{}, err
	}
	maps.Copy(vars, env.ToMap(os.Environ()))

	var ec EnvConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: vars}); err != nil {
		return EnvConfig{}, err
	}
	return ec, nil
}

// readPackageVersion 读取 package.json 的 version；文件不存在时返回空串。
func readPackageVersion(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	if !gjson.ValidBytes(b) {
		return "", errors.New("不是合法的 JSON")
	}
	return gjson.GetBytes(b, "version").String(), nil
}
