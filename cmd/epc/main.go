package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/EPC/internal/app/run"
	"github.com/John-Robertt/EPC/internal/config"
	"github.com/John-Robertt/EPC/internal/deletelog"
	"github.com/John-Robertt/EPC/internal/domain"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	switch args[0] {
	case "run":
		if code := runCmd(args[1:]); code != 0 {
			os.Exit(code)
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
}

func runCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printRunUsage()
			return 0
		}
	}

	ra, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printRunUsage()
		return 2
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return 1
	}

	eff, err := config.LoadEffective(cwd, config.CLIArgs{
		Path:     ra.Path,
		Apply:    ra.Apply,
		ApplySet: ra.ApplySet,
		HTMLPath: ra.HTML,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置无效：%v\n", err)
		return 1
	}

	progressW, interactive := pickProgressWriter()
	var obs run.Observer
	if interactive {
		obs = newProgressUI(progressW, isTTY(os.Stdout))
	}

	// 确认闸门只在 apply 时需要；提示走过程信息通道，回答从 stdin 读一行。
	var conf run.Confirmer
	if eff.Apply {
		promptW := progressW
		if promptW == nil {
			promptW = os.Stderr
		}
		conf = &stdinConfirmer{in: os.Stdin, out: promptW}
	}

	rr := run.ExecuteWithObserver(eff, conf, obs)

	emitReport(rr)
	if interactive && rr.Summary.Deleted > 0 {
		fmt.Fprintf(progressW, "log: %s\n", filepath.Join(eff.Path, deletelog.FileName))
	}

	if rr.Summary.Failed > 0 {
		return 1
	}
	return 0
}

type runArgs struct {
	Path     string
	Apply    bool
	ApplySet bool
	HTML     string
}

func parseRunArgs(args []string) (runArgs, error) {
	ra := runArgs{}

	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--apply":
			ra.Apply = true
			ra.ApplySet = true
		case strings.HasPrefix(a, "--apply="):
			v := strings.TrimPrefix(a, "--apply=")
			switch v {
			case "true":
				ra.Apply = true
			case "false":
				ra.Apply = false
			default:
				return runArgs{}, fmt.Errorf("--apply 只能是 true 或 false，实际是 %q", v)
			}
			ra.ApplySet = true
		case a == "--html":
			if i+1 >= len(args) {
				return runArgs{}, fmt.Errorf("--html 需要一个值")
			}
			i++
			ra.HTML = args[i]
		case strings.HasPrefix(a, "--html="):
			ra.HTML = strings.TrimPrefix(a, "--html=")
		case strings.HasPrefix(a, "-"):
			return runArgs{}, fmt.Errorf("未知参数 %q", a)
		default:
			if ra.Path != "" {
				return runArgs{}, fmt.Errorf("重复的 path：%q 与 %q", ra.Path, a)
			}
			ra.Path = a
		}
	}

	if strings.HasPrefix(ra.HTML, "-") {
		return runArgs{}, fmt.Errorf("--html 的值不合法：%q", ra.HTML)
	}

	return ra, nil
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprint(os.Stdout, `用法：
  epc run [path] [--apply[=true|false]] [--html <file>]

命令：
  run    扫描并删除与 hex code 精确匹配的 PNG（默认 dry-run）

使用 "epc run --help" 查看详细说明。
`)
}

func printRunUsage() {
	fmt.Fprint(os.Stdout, `用法：
  epc run [path] [--apply[=true|false]] [--html <file>]

参数：
  path        目标目录（默认当前目录）；codes 文件固定为 <path>/hex_codes_to_delete.txt
  --apply     执行删除（默认 dry-run，只报告匹配结果）；删除前需输入 yes 确认
  --html      可选：从 emoji 索引页（HTML）补充收集 hex code
  -h, --help  显示帮助
`)
}

// stdinConfirmer 是交互确认闸门：展示完整匹配列表并读取一行输入。
// 只有大小写不敏感的 "yes" 才放行；任何其它输入（含 EOF）都中止且零副作用。
type stdinConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (c *stdinConfirmer) Confirm(matched []string) bool {
	fmt.Fprintf(c.out, "\n将要删除的文件（%d 个）：\n", len(matched))
	for _, name := range matched {
		fmt.Fprintf(c.out, "  %s\n", name)
	}
	fmt.Fprint(c.out, "\nDelete these files? (yes/no): ")

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes")
}

func emitReport(rr domain.RunReport) {
	if isTTY(os.Stdout) {
		mode := "apply"
		if rr.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(os.Stdout, "完成（%s）：codes=%d matched=%d deleted=%d failed=%d\n",
			mode, rr.Summary.Codes, rr.Summary.Matched, rr.Summary.Deleted, rr.Summary.Failed,
		)
		if rr.Cancelled {
			fmt.Fprintln(os.Stdout, "已取消：未删除任何文件，也未写日志。")
		}
		if rr.Summary.Failed > 0 {
			for _, it := range rr.Items {
				if it.Status != domain.FileStatusFailed {
					continue
				}
				key := it.Name
				if key == "" {
					// 合成条目（codes 文件缺失、日志写入失败等）：没有文件名锚点。
					key = "<run>"
				}
				fmt.Fprintf(os.Stderr, "%s %s: %s\n", key, it.ErrorCode, it.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 RunReport JSON（摘要走 stderr）。
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(os.Stderr, "完成：codes=%d matched=%d deleted=%d failed=%d\n",
		rr.Summary.Codes, rr.Summary.Matched, rr.Summary.Deleted, rr.Summary.Failed,
	)
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickProgressWriter() (io.Writer, bool) {
	// 过程输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(os.Stderr) {
		return os.Stderr, true
	}
	// 某些环境（例如仅重定向 stderr）下，stdout 仍是 TTY：退化输出到 stdout。
	if isTTY(os.Stdout) {
		return os.Stdout, true
	}
	return nil, false
}
