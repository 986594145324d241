package run

import (
	"fmt"
	"time"

	"github.com/John-Robertt/EPC/internal/codes"
	"github.com/John-Robertt/EPC/internal/config"
	"github.com/John-Robertt/EPC/internal/del"
	"github.com/John-Robertt/EPC/internal/deletelog"
	"github.com/John-Robertt/EPC/internal/domain"
	"github.com/John-Robertt/EPC/internal/match"
)

// Execute 执行一次 run（dry-run/apply），返回对外稳定的 RunReport。
// 错误尽量“降级”为条目级失败；唯一会让流程提前结束的是 codes 文件缺失
// （以及目标目录不可读），由上层映射为非零退出码。
func Execute(eff config.EffectiveConfig, conf Confirmer) domain.RunReport {
	return ExecuteWithObserver(eff, conf, nil)
}

// ExecuteWithObserver 与 Execute 相同，但允许传入 Observer 以输出进度/阶段信息。
func ExecuteWithObserver(eff config.EffectiveConfig, conf Confirmer, obs Observer) domain.RunReport {
	started := time.Now().UTC()

	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Path:      eff.Path,
		DryRun:    !eff.Apply,
		StartedAt: started,
		Items:     make([]domain.FileItem, 0, 64),
	}

	readStarted := time.Now()
	hexCodes, err := codes.ReadFile(eff.CodesFile())
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(codes.ErrCode(err), err.Error()))
		return finalize(&rr)
	}

	// HTML 是补充输入：失败降级为合成条目，继续用 codes 文件的结果跑完。
	if eff.HTMLPath != "" {
		htmlCodes, e := codes.ReadHTMLFile(eff.HTMLPath)
		if e != nil {
			rr.Items = append(rr.Items, syntheticFailed(codes.ErrCode(e), e.Error()))
		} else {
			hexCodes = append(hexCodes, htmlCodes...)
		}
	}
	rr.Summary.Codes = len(hexCodes)

	if obs != nil {
		obs.OnPhaseDone("read", map[string]any{
			"codes": len(hexCodes),
		}, time.Since(readStarted))
	}

	matchStarted := time.Now()
	matched, err := match.Match(eff.Path, hexCodes)
	if err != nil {
		rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("读取目录失败：%v", err)))
		return finalize(&rr)
	}
	if obs != nil {
		obs.OnPhaseDone("match", map[string]any{
			"matched": len(matched),
		}, time.Since(matchStarted))
	}

	// 无匹配：不提示、不写日志，正常结束。
	if len(matched) == 0 {
		return finalize(&rr)
	}

	// dry-run：只报告，不确认、不触碰文件系统。
	if !eff.Apply {
		rr.Items = append(rr.Items, del.Delete(eff.Path, matched, true)...)
		return finalize(&rr)
	}

	// 确认闸门：除 "yes"（大小写不敏感）之外的任何输入都中止，且零副作用。
	if conf == nil || !conf.Confirm(matched) {
		rr.Cancelled = true
		rr.Items = append(rr.Items, del.Delete(eff.Path, matched, true)...)
		return finalize(&rr)
	}

	// 删除：严格串行；单文件失败只标记该条目，继续处理其余文件。
	for i, name := range matched {
		oneStarted := time.Now()
		it := del.DeleteOne(eff.Path, name)
		rr.Items = append(rr.Items, it)
		if obs != nil {
			obs.OnFileDone(i+1, len(matched), it, time.Since(oneStarted))
		}
	}

	// 日志只记录确实删除成功的文件；一个都没删成则不写。
	deleted := del.DeletedNames(rr.Items)
	if len(deleted) > 0 {
		if err := deletelog.Write(eff.Path, deleted); err != nil {
			rr.Items = append(rr.Items, syntheticFailed(domain.ErrCodeIOFailed, fmt.Sprintf("写入删除日志失败：%v", err)))
		}
	}

	return finalize(&rr)
}

func finalize(rr *domain.RunReport) domain.RunReport {
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return *rr
}

func syntheticFailed(code, msg string) domain.FileItem {
	if code == "" {
		code = domain.ErrCodeIOFailed
	}
	return domain.FileItem{
		Name:      "",
		Status:    domain.FileStatusFailed,
		ErrorCode: code,
		ErrorMsg:  msg,
	}
}
