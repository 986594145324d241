package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	progress "github.com/vardius/progress-go"

	"github.com/John-Robertt/EPC/internal/app/run"
	"github.com/John-Robertt/EPC/internal/config"
	"github.com/John-Robertt/EPC/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 是交互终端的过程输出：配置回显、阶段统计、删除进度条。
//
// 设计目标：
// - 所有过程信息写到 stderr（或 fallback 到 stdout），不污染 stdout 的 JSON 输出契约
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 进度条画在 stdout 上（progress-go 的输出端固定），因此只在 stdout 是 TTY 时启用
type progressUI struct {
	w       io.Writer
	withBar bool

	mu  sync.Mutex
	bar *progress.Bar
}

func newProgressUI(w io.Writer, withBar bool) *progressUI {
	return &progressUI{w: w, withBar: withBar}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	mode := "dry-run"
	modeHint := " (只报告，不删除)"
	if eff.Apply {
		mode = "apply"
		modeHint = ""
	}

	fmt.Fprintf(p.w, "[%s] EPC run (%s)\n", time.Now().Format("15:04:05"), mode)
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  path: %s\n", eff.Path)
	fmt.Fprintf(p.w, "  mode: %s%s\n", mode, modeHint)
	fmt.Fprintf(p.w, "  codes: %s\n", eff.CodesFile())
	if eff.HTMLPath != "" {
		fmt.Fprintf(p.w, "  html: %s\n", eff.HTMLPath)
	}
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch name {
	case "read":
		fmt.Fprintf(p.w, "读码: codes=%d (%s)\n", intField(fields, "codes"), formatShortDuration(dur))
	case "match":
		fmt.Fprintf(p.w, "匹配: matched=%d (%s)\n", intField(fields, "matched"), formatShortDuration(dur))
	default:
		// 兜底：未知阶段也不要静默（便于调试/演进）。
		fmt.Fprintf(p.w, "%s (%s)\n", name, formatShortDuration(dur))
	}
}

func (p *progressUI) OnFileDone(idx, total int, it domain.FileItem, dur time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.withBar {
		if p.bar == nil {
			p.bar = progress.New(0, int64(total), progress.Options{Verbose: false})
			_, _ = p.bar.Start()
		}
		p.bar.Advance(1)
	}

	if it.Status == domain.FileStatusFailed {
		fmt.Fprintf(p.w, "[%d/%d] %s FAIL %s: %s\n", idx, total, it.Name, it.ErrorCode, it.ErrorMsg)
	}

	if idx >= total && p.bar != nil {
		if _, err := p.bar.Stop(); err != nil {
			fmt.Fprintf(p.w, "进度条结束失败：%v\n", err)
		}
		p.bar = nil
		fmt.Fprintln(p.w)
	}
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	v, ok := fields[key]
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	default:
		return 0
	}
}
