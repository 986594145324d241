package domain

import (
	"regexp"
	"strings"
)

// HexCode 是待删除 PNG 的唯一标识：一个或多个 4+ 位十六进制数字段，
// 多段用 '-' 连接（对应多码点 emoji 序列，例如 1F469-200D-1F4BB）。
//
// 约束：大小写原样保留（目录匹配按字节精确比较），不做任何数值解释。
type HexCode string

var hexCodeRE = regexp.MustCompile(`^[0-9A-Fa-f]{4,}(?:-[0-9A-Fa-f]{4,})*$`)

// ParseHexCode 校验完整字符串形态的 hex code。
// 输入必须整体就是一个 code（不允许前后缀噪音）。
func ParseHexCode(s string) (HexCode, bool) {
	s = strings.TrimSpace(s)
	if !hexCodeRE.MatchString(s) {
		return "", false
	}
	return HexCode(s), true
}

// Filename 返回候选文件名（code + ".png"）。
// 候选文件名永远由 code 推导，不单独存储。
func (c HexCode) Filename() string { return string(c) + ".png" }
