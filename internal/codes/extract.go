package codes

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/John-Robertt/EPC/internal/domain"
)

// tokenRE 提取一行内的候选 hex code：4+ 位十六进制数字段（可用 '-' 连接多段），
// 且必须出现在行首或空白之后，避免把 "xABCD1234" 这类词中片段误判成 code。
// 捕获组之外的尾随内容（例如 "1F600.png" 里的 ".png"）天然不会进入 token。
var tokenRE = regexp.MustCompile(`(?:^|\s)([0-9A-Fa-f]{4,}(?:-[0-9A-Fa-f]{4,})*)`)

// Error 是读码阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case domain.ErrCodeCodesFileNotFound:
		return fmt.Sprintf("%s：未找到 codes 文件 %q", e.Code, e.Path)
	case domain.ErrCodeHTMLInvalid:
		return fmt.Sprintf("%s：HTML 解析失败（%q）：%v", e.Code, e.Path, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：读取 %q 失败：%v", e.Code, e.Path, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrCode 从 error 中提取 error_code；若不是 *Error 则返回空串。
func ErrCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Extract 从文本内容中提取候选 hex code。
//
// 规则（硬约束）：
// - 逐行扫描；首个非空白字节为 '#' 的行是注释，整行丢弃
// - 其余行内所有匹配 tokenRE 的片段按出现顺序收集，大小写原样保留
// - 不去重：下游匹配是集合语义，重复无害
// - 不合法/无法解析的片段只是产生不了候选，不构成错误
func Extract(content string) []domain.HexCode {
	out := make([]domain.HexCode, 0, 64)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, m := range tokenRE.FindAllStringSubmatch(line, -1) {
			if len(m) < 2 {
				continue
			}
			if c, ok := domain.ParseHexCode(m[1]); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// ReadFile 读取 codes 文件并提取候选 code。
// 文件不存在是致命条件：上层应立即终止本次 run 并以非零码退出。
func ReadFile(path string) ([]domain.HexCode, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Code: domain.ErrCodeCodesFileNotFound, Path: path, Err: err}
		}
		return nil, &Error{Code: domain.ErrCodeIOFailed, Path: path, Err: err}
	}
	return Extract(string(b)), nil
}
