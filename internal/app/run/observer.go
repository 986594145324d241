package run

import (
	"time"

	"github.com/John-Robertt/EPC/internal/config"
	"github.com/John-Robertt/EPC/internal/domain"
)

// Observer 用于把“运行进度/阶段/单文件结果”从核心执行流程中解耦出来。
//
// 约束：run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（read/match，用于打印阶段统计与耗时）。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnFileDone 在单个文件删除完成时调用（用于进度条推进与失败的逐行输出）。
	OnFileDone(idx, total int, it domain.FileItem, dur time.Duration)
}

// Confirmer 是删除前的确认闸门：展示完整匹配列表并等待操作员决定。
// 返回 true 才允许删除；nil Confirmer 视为拒绝（安全默认）。
type Confirmer interface {
	Confirm(matched []string) bool
}
