package codes

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/John-Robertt/EPC/internal/domain"
)

func TestExtractHTML_ImgAndAnchor(t *testing.T) {
	html := `<html><body>
<img src="png/1F600.png" alt="grinning">
<img src="1F469-200D-1F4BB.png?v=2">
<a href="/emoji/1F601.png#top">download</a>
<img src="logo.svg">
<a href="notes.txt">notes</a>
<img src="not-a-code.png">
</body></html>`

	got, err := ExtractHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	assertCodes(t, got, []string{"1F600", "1F469-200D-1F4BB", "1F601"})
}

func TestExtractHTML_EmptyDocument(t *testing.T) {
	got, err := ExtractHTML(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("期望空结果，实际 %v", got)
	}
}

func TestReadHTMLFile_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadHTMLFile(filepath.Join(dir, "index.html"))
	if ErrCode(err) != domain.ErrCodeIOFailed {
		t.Fatalf("期望 %q，实际 err=%v (code=%q)", domain.ErrCodeIOFailed, err, ErrCode(err))
	}
}
