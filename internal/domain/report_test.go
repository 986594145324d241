package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestRunReport_Finalize_SortAndSummaryAndUTC(t *testing.T) {
	r := RunReport{
		Path:       "/abs/path",
		DryRun:     false,
		StartedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 8*3600)),
		FinishedAt: time.Date(2026, 3, 1, 10, 0, 1, 0, time.FixedZone("X", 8*3600)),
		Summary:    ReportSummary{Codes: 3},
		Items: []FileItem{
			{Name: "1F601.png", Status: FileStatusDeleted},
			{Name: "", Status: FileStatusFailed, ErrorCode: ErrCodeIOFailed}, // 合成项
			{Name: "1F600.png", Status: FileStatusDeleted},
			{Name: "1F602.png", Status: FileStatusFailed, ErrorCode: ErrCodeDeleteFailed},
		},
	}

	r.Finalize()

	// name=="" 的合成项必须排在最后；其余按字典序。
	got := []string{r.Items[0].Name, r.Items[1].Name, r.Items[2].Name, r.Items[3].Name}
	want := []string{"1F600.png", "1F601.png", "1F602.png", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items 排序不符合契约：%v", got)
		}
	}

	// codes 保留 run 层填写的值；其余由 items 统计。
	if r.Summary.Codes != 3 || r.Summary.Matched != 3 || r.Summary.Deleted != 2 || r.Summary.Failed != 2 {
		t.Fatalf("summary 统计不正确：%+v", r.Summary)
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	// time.Time 在 UTC 下应输出 'Z' 后缀。
	if !bytes.Contains(b, []byte("\"started_at\":\"2026-03-01T02:00:00Z\"")) {
		t.Fatalf("started_at 不是 UTC RFC3339：%s", string(b))
	}
}
