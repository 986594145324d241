package del

import (
	"path/filepath"

	"github.com/John-Robertt/EPC/internal/domain"
	"github.com/John-Robertt/EPC/internal/infra/fsx"
)

// 通过可替换的函数指针，让测试能稳定模拟单文件删除失败。
var removeFile = fsx.Remove

// Delete 逐个删除 dir 下的 names（base name），返回与输入同序的结果条目。
//
// 契约：
// - dryRun：不做任何文件系统变更，所有条目标记为 planned
// - 单个文件删除失败（权限、已被并发移除等）只影响该条目：
//   标记 failed 后继续处理剩余文件——失败隔离用结果值表达，不用错误传播
// - deleted 状态表示文件确实已被移除
func Delete(dir string, names []string, dryRun bool) []domain.FileItem {
	items := make([]domain.FileItem, 0, len(names))
	for _, name := range names {
		if dryRun {
			items = append(items, domain.FileItem{Name: name, Status: domain.FileStatusPlanned})
			continue
		}
		items = append(items, DeleteOne(dir, name))
	}
	return items
}

// DeleteOne 删除单个文件并返回其结果条目。
func DeleteOne(dir, name string) domain.FileItem {
	if err := removeFile(filepath.Join(dir, name)); err != nil {
		return domain.FileItem{
			Name:      name,
			Status:    domain.FileStatusFailed,
			ErrorCode: domain.ErrCodeDeleteFailed,
			ErrorMsg:  err.Error(),
		}
	}
	return domain.FileItem{Name: name, Status: domain.FileStatusDeleted}
}

// DeletedNames 从结果条目中取出确实删除成功的 base name（写删除日志用）。
func DeletedNames(items []domain.FileItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Status == domain.FileStatusDeleted {
			out = append(out, it.Name)
		}
	}
	return out
}
