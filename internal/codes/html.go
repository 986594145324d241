package codes

import (
	"errors"
	"io"
	"os"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/John-Robertt/EPC/internal/domain"
)

// ExtractHTML 从 emoji 索引页（HTML）中收集被引用的候选 hex code。
//
// 规则：遍历 img[src] 与 a[href]，取 URL 的 basename；仅当扩展名是 .png 且
// 去掉扩展名后是合法 hex code 时才收集。顺序按文档出现顺序，不去重。
func ExtractHTML(r io.Reader) ([]domain.HexCode, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &Error{Code: domain.ErrCodeHTMLInvalid, Err: err}
	}

	out := make([]domain.HexCode, 0, 64)
	collect := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		// 去掉 query/fragment，拿到干净的路径段。
		if i := strings.IndexAny(raw, "?#"); i >= 0 {
			raw = raw[:i]
		}
		base := path.Base(raw)
		ext := path.Ext(base)
		if !strings.EqualFold(ext, ".png") {
			return
		}
		if c, ok := domain.ParseHexCode(strings.TrimSuffix(base, ext)); ok {
			out = append(out, c)
		}
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("src"); ok {
			collect(v)
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("href"); ok {
			collect(v)
		}
	})
	return out, nil
}

// ReadHTMLFile 打开并解析 HTML 文件，收集其中引用的候选 hex code。
// HTML 源是补充输入：调用方应把失败降级处理，而不是中止整次 run。
func ReadHTMLFile(p string) ([]domain.HexCode, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, &Error{Code: domain.ErrCodeIOFailed, Path: p, Err: err}
	}
	defer f.Close()

	cs, err := ExtractHTML(f)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Path == "" {
			e.Path = p
		}
		return nil, err
	}
	return cs, nil
}
