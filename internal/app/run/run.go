// Package run 编排各子命令的执行流程，并把结果汇总为对外稳定的 domain.Report。
//
// 这里的函数从不返回 error：所有失败都落到 Report 的 error_code / diagnostics 上，
// 由 CLI 层决定输出形态与退出码。
package run

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/John-Robertt/iconpipe/internal/api"
	"github.com/John-Robertt/iconpipe/internal/catalog"
	"github.com/John-Robertt/iconpipe/internal/category"
	"github.com/John-Robertt/iconpipe/internal/collate"
	"github.com/John-Robertt/iconpipe/internal/config"
	"github.com/John-Robertt/iconpipe/internal/domain"
	"github.com/John-Robertt/iconpipe/internal/infra/fsx"
	"github.com/John-Robertt/iconpipe/internal/infra/httpx"
	"github.com/John-Robertt/iconpipe/internal/scan"
	"github.com/John-Robertt/iconpipe/internal/verify"
)

const (
	CommandCatalog = "catalog"
	CommandVerify  = "verify"
	CommandCollate = "collate"
)

func newValidator(eff config.EffectiveConfig) verify.Validator {
	return verify.Validator{
		Categories:  category.Default(),
		Current:     eff.Version,
		Concurrency: eff.Concurrency,
	}
}

// Verify 只校验本地资产树。
func Verify(eff config.EffectiveConfig, obs Observer) domain.Report {
	rr := start(CommandVerify, eff, obs)
	checkAssets(&rr, newValidator(eff), eff.AssetsPath, obs)
	return finish(rr)
}

// Catalog 执行完整流程：资产校验 -> 拉取 -> 信封/记录校验 -> 排序 -> 生成 -> 原子写入。
// 任一步失败即停止，目录文件不会被写出。
func Catalog(ctx context.Context, eff config.EffectiveConfig, q api.Query, obs Observer) domain.Report {
	rr := start(CommandCatalog, eff, obs)
	v := newValidator(eff)

	if !checkAssets(&rr, v, eff.AssetsPath, obs) {
		return finish(rr)
	}

	hc, err := httpx.NewClient(eff.ProxyURL)
	if err != nil {
		return finish(failed(rr, domain.ErrCodeConfigInvalid, fmt.Sprintf("proxy.url 无效：%v", err)))
	}
	client := api.Client{BaseURL: eff.APIURL, HTTP: hc}

	fetchStarted := time.Now()
	resp, err := client.Fetch(ctx, q)
	if err != nil {
		return finish(failed(rr, domain.ErrCodeFetchFailed, err.Error()))
	}
	if obs != nil {
		obs.OnPhaseDone("fetch", map[string]any{
			"icons": len(resp.Icons),
			"count": resp.Count,
		}, time.Since(fetchStarted))
	}

	metaStarted := time.Now()
	res, err := v.Response(resp)
	rr.Diagnostics = append(rr.Diagnostics, res.Diagnostics...)
	rr.Summary.Icons = res.Checked
	if obs != nil {
		obs.OnPhaseDone("metadata", map[string]any{
			"icons":   res.Checked,
			"invalid": res.Invalid,
		}, time.Since(metaStarted))
	}
	if err != nil {
		var ee *verify.EnvelopeError
		if errors.As(err, &ee) {
			return finish(failed(rr, domain.ErrCodeBadEnvelope, err.Error()))
		}
		return finish(failed(rr, domain.ErrCodeBadMetadata, err.Error()))
	}

	icons := slices.Clone(resp.Icons)
	slices.SortStableFunc(icons, func(a, b domain.IconMetadata) int {
		return strings.Compare(a.Name, b.Name)
	})

	gen := catalog.Generator{Categories: v.Categories, Current: eff.Version}
	out, err := gen.Generate(icons)
	if err != nil {
		return finish(failed(rr, domain.ErrCodeBadMetadata, err.Error()))
	}
	if obs != nil {
		for i, m := range icons {
			obs.OnIconDone(i+1, len(icons), m.Name)
		}
	}

	writeStarted := time.Now()
	dir, name := filepath.Split(eff.CatalogPath)
	if err := fsx.WriteFileAtomic(dir, name, out); err != nil {
		return finish(failed(rr, domain.ErrCodeWriteFailed, fmt.Sprintf("Could not write file: %v", err)))
	}
	rr.Output = eff.CatalogPath
	rr.Summary.Written = len(icons)
	if obs != nil {
		obs.OnPhaseDone("write", map[string]any{
			"icons": len(icons),
			"path":  eff.CatalogPath,
		}, time.Since(writeStarted))
	}
	return finish(rr)
}

// Collate 整理扁平导出文件；不读取配置。
func Collate(opts collate.Options, obs Observer) domain.Report {
	rr := start(CommandCollate, config.EffectiveConfig{}, obs)
	rr.Output = opts.Source

	var onWritten func(string)
	if obs != nil {
		onWritten = obs.OnWritten
	}
	written, err := collate.Run(opts, onWritten)
	rr.Summary.Written = len(written)
	if err != nil {
		if fsx.IsPathTypeConflict(err) {
			return finish(failed(rr, domain.ErrCodeWriteFailed, err.Error()))
		}
		return finish(failed(rr, domain.ErrCodeIOFailed, err.Error()))
	}
	return finish(rr)
}

// checkAssets 把资产校验结果并入 rr；返回是否可以继续后续步骤。
func checkAssets(rr *domain.Report, v verify.Validator, root string, obs Observer) bool {
	started := time.Now()
	res, err := v.Assets(root)
	rr.Diagnostics = append(rr.Diagnostics, res.Diagnostics...)
	rr.Summary.Assets = res.Checked
	if obs != nil {
		obs.OnPhaseDone("assets", map[string]any{
			"assets":  res.Checked,
			"invalid": res.Invalid,
		}, time.Since(started))
	}
	if err == nil {
		return true
	}

	var ae *verify.AssetsError
	switch {
	case scan.IsBadFolder(err):
		*rr = failed(*rr, domain.ErrCodeBadFolder, err.Error())
	case errors.As(err, &ae):
		*rr = failed(*rr, domain.ErrCodeBadAssets, err.Error())
	default:
		*rr = failed(*rr, domain.ErrCodeIOFailed, fmt.Sprintf("扫描失败：%v", err))
	}
	return false
}

func start(command string, eff config.EffectiveConfig, obs Observer) domain.Report {
	if obs != nil {
		obs.OnStart(command, eff)
	}
	rr := domain.Report{
		Command:     command,
		StartedAt:   time.Now().UTC(),
		Diagnostics: make([]domain.Diagnostic, 0, 16),
	}
	if !eff.Version.IsZero() {
		rr.Version = eff.Version.String()
	}
	return rr
}

func failed(rr domain.Report, code, msg string) domain.Report {
	rr.ErrorCode = code
	rr.ErrorMsg = msg
	return rr
}

func finish(rr domain.Report) domain.Report {
	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr
}
