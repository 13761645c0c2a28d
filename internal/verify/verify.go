package verify

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/John-Robertt/iconpipe/internal/category"
	"github.com/John-Robertt/iconpipe/internal/domain"
	"github.com/John-Robertt/iconpipe/internal/infra/svgx"
	"github.com/John-Robertt/iconpipe/internal/scan"
)

// DefaultConcurrency 是 fan-out 的默认并发上限。
const DefaultConcurrency = 8

// Validator 持有校验所需的只读配置（分类表、当前版本、并发上限）。
type Validator struct {
	Categories  category.Map
	Current     domain.NumericVersion
	Concurrency int
}

// Result 是一次校验的产出。
type Result struct {
	Diagnostics []domain.Diagnostic
	// Checked 是参与校验的单元数（资产：(图标, 字重) 组合；元数据：记录条数）。
	Checked int
	// Invalid 是未通过硬性检查的单元数。
	Invalid int
}

func (v Validator) workers() int {
	if v.Concurrency < 1 {
		return DefaultConcurrency
	}
	return v.Concurrency
}

// CheckNode 对单个 SVG 根节点执行全部硬性与软性检查。
func (v Validator) CheckNode(n svgx.Node, name string, w domain.Weight) (bool, []domain.Diagnostic) {
	subject := w.Subject(name)
	valid := true
	var ds []domain.Diagnostic
	for _, c := range nodeChecks {
		if c.fails(n) {
			valid = false
			ds = append(ds, fail(subject, c.code, c.msg))
		}
	}
	for _, c := range nodeWarnings {
		if c.fails(n) {
			ds = append(ds, warn(subject, c.code, c.msg))
		}
	}
	return valid, ds
}

// CheckIcon 对单条记录执行全部检查；同一图标的所有违规一起返回。
func (v Validator) CheckIcon(m domain.IconMetadata) (bool, []domain.Diagnostic) {
	valid := true
	var ds []domain.Diagnostic
	for _, c := range iconChecks {
		if c.fails(v, m) {
			valid = false
			ds = append(ds, fail(m.Name, c.code, c.msg))
		}
	}
	for _, c := range iconWarnings {
		if c.fails(v, m) {
			ds = append(ds, warn(m.Name, c.code, c.msg))
		}
	}
	return valid, ds
}

// CheckEnvelope 执行全部信封检查（不短路）。
func (v Validator) CheckEnvelope(r domain.APIResponse) []domain.Diagnostic {
	var ds []domain.Diagnostic
	for _, c := range envelopeChecks {
		if c.fails(v, r) {
			ds = append(ds, fail("", c.code, c.msg))
		}
	}
	return ds
}

type slot struct {
	valid bool
	ds    []domain.Diagnostic
}

// Assets 校验 root 下的资产树。
//
// - 非字重目录：返回 *scan.BadFolderError，不解析任何文件
// - 每个文件是一个独立任务；任务只写自己的结果槽位，汇总在全部任务结束后进行
// - 一个 (图标, 字重) 组合下任一文件无效即该组合无效；兄弟字重互不影响
// - 无效组合数 > 0 时返回 *AssetsError
func (v Validator) Assets(root string) (Result, error) {
	files, err := scan.ScanAssets(root)
	if err != nil {
		return Result{}, err
	}

	slots := make([]slot, len(files))
	var g errgroup.Group
	g.SetLimit(v.workers())
	for i := range files {
		i := i
		g.Go(func() error {
			slots[i] = v.checkFile(files[i])
			return nil
		})
	}
	_ = g.Wait()

	icons := make(map[string]map[domain.Weight]bool, len(files))
	var res Result
	for i, f := range files {
		weights, ok := icons[f.Name]
		if !ok {
			weights = make(map[domain.Weight]bool, len(domain.Weights))
			icons[f.Name] = weights
		}
		prev, seen := weights[f.Weight]
		weights[f.Weight] = slots[i].valid && (!seen || prev)
		res.Diagnostics = append(res.Diagnostics, slots[i].ds...)
	}

	for _, weights := range icons {
		for _, valid := range weights {
			res.Checked++
			if !valid {
				res.Invalid++
			}
		}
	}
	domain.SortDiagnostics(res.Diagnostics)

	if res.Invalid > 0 {
		return res, &AssetsError{Bad: res.Invalid}
	}
	return res, nil
}

func (v Validator) checkFile(f domain.AssetFile) slot {
	subject := f.Weight.Subject(f.Name)
	b, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return slot{ds: []domain.Diagnostic{fail(subject, domain.CheckReadFailed, fmt.Sprintf("could not be read: %v", err))}}
	}
	n, err := svgx.Parse(b)
	if err != nil {
		return slot{ds: []domain.Diagnostic{fail(subject, domain.CheckParseFailed, fmt.Sprintf("could not be parsed: %v", err))}}
	}
	valid, ds := v.CheckNode(n, f.Name, f.Weight)
	return slot{valid: valid, ds: ds}
}

// Response 校验 API 响应：先信封，后逐条记录。
//
// 信封任一检查失败：返回 *EnvelopeError，不做任何逐条检查。
// 否则逐条检查全部记录，有无效记录时返回 *MetadataError。
func (v Validator) Response(r domain.APIResponse) (Result, error) {
	if ds := v.CheckEnvelope(r); len(ds) > 0 {
		return Result{Diagnostics: ds}, &EnvelopeError{Failed: len(ds)}
	}

	slots := make([]slot, len(r.Icons))
	var g errgroup.Group
	g.SetLimit(v.workers())
	for i := range r.Icons {
		i := i
		g.Go(func() error {
			valid, ds := v.CheckIcon(r.Icons[i])
			slots[i] = slot{valid: valid, ds: ds}
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Checked: len(r.Icons)}
	for _, s := range slots {
		if !s.valid {
			res.Invalid++
		}
		res.Diagnostics = append(res.Diagnostics, s.ds...)
	}
	domain.SortDiagnostics(res.Diagnostics)

	if res.Invalid > 0 {
		return res, &MetadataError{Bad: res.Invalid}
	}
	return res, nil
}

func fail(subject, code, msg string) domain.Diagnostic {
	return domain.Diagnostic{Severity: domain.SeverityFail, Subject: subject, Code: code, Message: msg}
}

func warn(subject, code, msg string) domain.Diagnostic {
	return domain.Diagnostic{Severity: domain.SeverityWarn, Subject: subject, Code: code, Message: msg}
}
