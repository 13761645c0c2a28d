package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Severity 是诊断的严重程度。WARN 永远不影响通过/失败与退出码。
type Severity string

const (
	SeverityFail Severity = "FAIL"
	SeverityWarn Severity = "WARN"
)

const (
	CheckNotCurrentColor = "not_current_color"
	CheckBadViewBox      = "bad_viewbox"
	CheckNonPathChildren = "non_path_children"
	CheckReadFailed      = "read_failed"
	CheckParseFailed     = "parse_failed"
	CheckBadCount        = "bad_count"
	CheckBadAPIVersion   = "bad_api_version"
	CheckBadCodepoint    = "bad_codepoint"
	CheckBadCategory     = "bad_category"
	CheckBadVersion      = "bad_version"
	CheckUnknownStatus   = "unknown_status"
)

const (
	ErrCodeConfigInvalid        = "config_invalid"
	ErrCodeConfigMissingVersion = "config_missing_version"
	ErrCodeBadFolder            = "bad_folder"
	ErrCodeBadAssets            = "bad_assets"
	ErrCodeBadEnvelope          = "bad_envelope"
	ErrCodeBadMetadata          = "bad_metadata"
	ErrCodeFetchFailed          = "fetch_failed"
	ErrCodeWriteFailed          = "write_failed"
	ErrCodeIOFailed             = "io_failed"
)

// Diagnostic 是一次检查的结构化结果（不含任何展示逻辑）。
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Report 是对外稳定输出（stdout JSON / 终端摘要）的结构。
type Report struct {
	Command string `json:"command"`
	Version string `json:"version"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary     ReportSummary `json:"summary"`
	Diagnostics []Diagnostic  `json:"diagnostics"`

	Output    string `json:"output,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`
}

type ReportSummary struct {
	Failed  int `json:"failed"`
	Warned  int `json:"warned"`
	Assets  int `json:"assets"`
	Icons   int `json:"icons"`
	Written int `json:"written"`
}

// OK 表示本次运行没有任何未解决的失败。
func (r Report) OK() bool {
	return r.ErrorCode == "" && r.Summary.Failed == 0
}

// Finalize 做三件事：
// 1) 时间统一为 UTC
// 2) diagnostics 稳定排序：subject → severity（FAIL 在前）→ code
// 3) failed/warned 由 diagnostics 计算得出（其余计数由调用方填写）
//
// 排序保证并发检查的输出与完成顺序无关：同一棵资产树跑两次，输出逐字节一致。
func (r *Report) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	if r.Diagnostics == nil {
		r.Diagnostics = []Diagnostic{}
	}
	SortDiagnostics(r.Diagnostics)

	r.Summary.Failed = 0
	r.Summary.Warned = 0
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case SeverityFail:
			r.Summary.Failed++
		case SeverityWarn:
			r.Summary.Warned++
		}
	}
}

// SortDiagnostics 按 subject → severity → code 稳定排序。
// subject 为空的信封级诊断排在最前（它们描述的是整个响应）。
func SortDiagnostics(ds []Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i], ds[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Severity != b.Severity {
			return a.Severity == SeverityFail
		}
		return a.Code < b.Code
	})
}

// MarshalJSON 仅用于集中约束输出的稳定性。
func (r Report) MarshalJSON() ([]byte, error) {
	type Alias Report
	return json.Marshal(Alias(r))
}
