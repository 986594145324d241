package deletelog

import (
	"strconv"
	"strings"

	"github.com/John-Robertt/EPC/internal/infra/fsx"
)

// FileName 是删除日志的固定文件名（覆盖写，不追加）。
const FileName = "deleted_files_log.txt"

// Write 在 dir 下写出删除日志：首行 "Deleted <N> files:"，随后每行一个 base name。
// 只应在“已确认且至少删除一个文件”之后调用（由 run 层保证）。
func Write(dir string, deleted []string) error {
	var b strings.Builder
	b.WriteString("Deleted " + strconv.Itoa(len(deleted)) + " files:\n")
	for _, name := range deleted {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return fsx.WriteFileAtomicReplace(dir, FileName, []byte(b.String()))
}
