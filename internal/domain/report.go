package domain

import (
	"encoding/json"
	"sort"
	"time"
)

const (
	FileStatusPlanned = "planned"
	FileStatusDeleted = "deleted"
	FileStatusFailed  = "failed"
)

const (
	ErrCodeCodesFileNotFound = "codes_file_not_found"
	ErrCodeHTMLInvalid       = "html_invalid"
	ErrCodeIOFailed          = "io_failed"
	ErrCodeDeleteFailed      = "delete_failed"
	ErrCodeConfigInvalid     = "config_invalid"
)

// RunReport 是对外稳定输出（stdout JSON）的结构。
type RunReport struct {
	Path      string `json:"path"`
	DryRun    bool   `json:"dry_run"`
	Cancelled bool   `json:"cancelled"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []FileItem    `json:"items"`
}

type ReportSummary struct {
	Codes   int `json:"codes"`
	Matched int `json:"matched"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// FileItem 是单个匹配文件的结果（只记 base name，不含路径）。
// Name 为空的条目是合成项（codes 文件缺失、日志写入失败等运行级错误）。
type FileItem struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Finalize 做三件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) items 稳定排序：按 name 字典序；name=="" 的合成项排在最后
// 3) summary 的 matched/deleted/failed 由 items 计算得出（codes 由 run 层填写）
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Items, func(i, j int) bool {
		a := r.Items[i].Name
		b := r.Items[j].Name
		if a == "" && b == "" {
			return false
		}
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})

	s := ReportSummary{Codes: r.Summary.Codes}
	for _, it := range r.Items {
		if it.Name != "" {
			s.Matched++
		}
		switch it.Status {
		case FileStatusDeleted:
			s.Deleted++
		case FileStatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}

// MarshalJSON 仅用于集中约束输出的稳定性（避免未来不小心引入非确定字段）。
// 当前只是透传 encoding/json 的默认行为。
func (r RunReport) MarshalJSON() ([]byte, error) {
	type Alias RunReport
	return json.Marshal(Alias(r))
}
