package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/John-Robertt/EPC/internal/config"
	"github.com/John-Robertt/EPC/internal/domain"
)

func TestProgressUI_OnStartEchoesConfig(t *testing.T) {
	var buf bytes.Buffer
	ui := newProgressUI(&buf, false)

	ui.OnStart(config.EffectiveConfig{Path: "/data/emojis", Apply: false})

	s := buf.String()
	if !strings.Contains(s, "dry-run") {
		t.Fatalf("缺少模式提示：%q", s)
	}
	if !strings.Contains(s, "/data/emojis") {
		t.Fatalf("缺少 path 回显：%q", s)
	}
	if !strings.Contains(s, config.CodesFileName) {
		t.Fatalf("缺少 codes 文件位置：%q", s)
	}
}

func TestProgressUI_PhaseLines(t *testing.T) {
	var buf bytes.Buffer
	ui := newProgressUI(&buf, false)

	ui.OnPhaseDone("read", map[string]any{"codes": 12}, 30*time.Millisecond)
	ui.OnPhaseDone("match", map[string]any{"matched": 3}, 0)

	s := buf.String()
	if !strings.Contains(s, "codes=12") || !strings.Contains(s, "matched=3") {
		t.Fatalf("阶段统计不完整：%q", s)
	}
}

func TestProgressUI_FailedFileLine(t *testing.T) {
	var buf bytes.Buffer
	ui := newProgressUI(&buf, false)

	ui.OnFileDone(1, 2, domain.FileItem{
		Name:      "1F600.png",
		Status:    domain.FileStatusFailed,
		ErrorCode: domain.ErrCodeDeleteFailed,
		ErrorMsg:  "permission denied",
	}, time.Millisecond)
	ui.OnFileDone(2, 2, domain.FileItem{Name: "1F601.png", Status: domain.FileStatusDeleted}, time.Millisecond)

	s := buf.String()
	if !strings.Contains(s, "1F600.png FAIL delete_failed") {
		t.Fatalf("失败文件应逐行输出：%q", s)
	}
	if strings.Contains(s, "1F601.png") {
		t.Fatalf("成功文件不应产生单独行（由进度条覆盖）：%q", s)
	}
}

func TestIntField(t *testing.T) {
	if intField(nil, "x") != 0 {
		t.Fatalf("nil fields 应返回 0")
	}
	if intField(map[string]any{"x": 7}, "x") != 7 {
		t.Fatalf("int 取值失败")
	}
	if intField(map[string]any{"x": "7"}, "x") != 0 {
		t.Fatalf("非整型应返回 0")
	}
}
