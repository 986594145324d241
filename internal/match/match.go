package match

import (
	"os"
	"sort"

	"github.com/John-Robertt/EPC/internal/domain"
)

// Match 返回 dir 顶层（不递归）中与某个候选文件名逐字节相等的文件名（base name）。
//
// 保证（硬约束）：
// - 只做精确全名匹配：不存在前缀/子串/大小写变体/其它扩展名的“近似命中”
// - 结果只包含目录里真实存在的名字，候选集不会凭空进入结果
// - 结果按字典序排序（稳定输出，便于对比与测试）
//
// 候选列表为空时直接返回空结果，不读目录、不报错。
func Match(dir string, codes []domain.HexCode) ([]string, error) {
	if len(codes) == 0 {
		return []string{}, nil
	}

	want := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		want[c.Filename()] = struct{}{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(want))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := want[e.Name()]; ok {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
