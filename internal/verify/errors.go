package verify

import "fmt"

// AssetsError 表示有 Bad 个 (图标, 字重) 组合未通过硬性检查。
type AssetsError struct {
	Bad int
}

func (e *AssetsError) Error() string {
	return fmt.Sprintf("%d bad assets", e.Bad)
}

// EnvelopeError 表示 API 信封有 Failed 项检查失败；此时不做逐条记录检查。
type EnvelopeError struct {
	Failed int
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("api response: %d envelope checks failed", e.Failed)
}

// MetadataError 表示有 Bad 条图标记录未通过检查。
type MetadataError struct {
	Bad int
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%d bad metadatas", e.Bad)
}
