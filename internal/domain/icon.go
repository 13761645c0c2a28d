package domain

// IconStatus 是远端目录中图标的设计状态。
type IconStatus string

const (
	IconStatusBacklog     IconStatus = "Backlog"
	IconStatusDesigning   IconStatus = "Designing"
	IconStatusDesigned    IconStatus = "Designed"
	IconStatusImplemented IconStatus = "Implemented"
	IconStatusDeprecated  IconStatus = "Deprecated"
	IconStatusNone        IconStatus = ""
)

// Valid 判断 s 是否属于固定枚举（空串也是合法值）。
func (s IconStatus) Valid() bool {
	switch s {
	case IconStatusBacklog, IconStatusDesigning, IconStatusDesigned,
		IconStatusImplemented, IconStatusDeprecated, IconStatusNone:
		return true
	default:
		return false
	}
}

// IconMetadata 是 API 返回的单个图标记录。
//
// 可选数值字段用指针表示“缺失”；与原始数据约定一致，0 也按缺失处理（见 verify）。
type IconMetadata struct {
	Name             string     `json:"name"`
	Alias            string     `json:"alias,omitempty"`
	RID              string     `json:"rid,omitempty"`
	Category         string     `json:"category"`
	Tags             []string   `json:"tags"`
	SearchCategories []string   `json:"search_categories"`
	Status           IconStatus `json:"status"`
	Codepoint        *int       `json:"codepoint,omitempty"`
	Published        bool       `json:"published"`
	PublishedIn      *float64   `json:"published_in,omitempty"`
	UpdatedIn        *float64   `json:"updated_in,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}

// APIResponse 是 API 响应的外层信封。
type APIResponse struct {
	Icons   []IconMetadata `json:"icons"`
	Count   int            `json:"count"`
	Version float64        `json:"version"`
}
