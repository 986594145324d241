package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrCodeInvalid 表示 CLI 参数无法归一化为有效配置。
const ErrCodeInvalid = "config_invalid"

// CodesFileName 是输入 codes 文件的固定名字。
// 产品契约：除该固定文件名之外，本工具不提供任何配置系统（没有配置文件）。
const CodesFileName = "hex_codes_to_delete.txt"

// CLIArgs 只包含 CLI 暴露的入口（path/apply/html），并保留“是否显式指定”的信息。
type CLIArgs struct {
	Path string

	Apply    bool
	ApplySet bool

	HTMLPath string
}

// EffectiveConfig 是归一化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	Path string

	// Apply 为 false 时是 dry-run：只报告匹配结果，不确认、不删除、不写日志。
	Apply bool

	// HTMLPath 可选：emoji 索引页，作为 codes 文件之外的补充输入。
	HTMLPath string
}

// CodesFile 返回 codes 文件的绝对路径（固定位于目标目录下）。
func (e EffectiveConfig) CodesFile() string { return filepath.Join(e.Path, CodesFileName) }

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：%v", e.Code, e.Err)
	}
	return e.Code
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

// LoadEffective 把 CLI 参数归一化为最终配置。
//
// 规则（固定）：
// - path：CLI 提供则相对 cwd 解析为 clean + absolute；未提供则取 cwd 本身
// - apply：CLI --apply/--apply=false；默认 false（dry-run）
// - html：可选；相对 cwd 解析
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Err: err}
	}

	path := absCleanFrom(cwdAbs, cli.Path)
	if path == "" {
		path = cwdAbs
	}

	html := ""
	if strings.TrimSpace(cli.HTMLPath) != "" {
		html = absCleanFrom(cwdAbs, cli.HTMLPath)
	}

	apply := cli.ApplySet && cli.Apply

	return EffectiveConfig{
		Path:     path,
		Apply:    apply,
		HTMLPath: html,
	}, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = filepath.Clean(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}
