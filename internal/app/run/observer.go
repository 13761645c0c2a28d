package run

import (
	"time"

	"github.com/John-Robertt/iconpipe/internal/config"
)

// Observer 用于把“阶段/条目结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - 事件目前都在调用方 goroutine 上发出；实现仍应按并发安全来写。
type Observer interface {
	// OnStart 在命令开始时调用。collate 不读取配置，eff 为零值。
	OnStart(command string, eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（用于打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnIconDone 在图标写入目录模块时调用（每个图标一行 DONE）。
	OnIconDone(idx, total int, name string)
	// OnWritten 在 collate 写出一个文件后调用。
	OnWritten(path string)
}
