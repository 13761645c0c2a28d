package verify

import (
	"github.com/John-Robertt/iconpipe/internal/domain"
	"github.com/John-Robertt/iconpipe/internal/infra/svgx"
)

const (
	// PUAStart/PUAEnd 是 BMP 私用区的闭区间。
	PUAStart = 57344
	PUAEnd   = 63743

	ViewBox      = "0 0 256 256"
	CurrentColor = "currentColor"
)

type nodeCheck struct {
	code  string
	msg   string
	fails func(n svgx.Node) bool
}

// 硬性检查：任意一项失败即该 (图标, 字重) 无效。
var nodeChecks = []nodeCheck{
	{
		code: domain.CheckNotCurrentColor,
		msg:  "does not use currentColor",
		fails: func(n svgx.Node) bool {
			v, _ := n.Attr("fill")
			return v != CurrentColor
		},
	},
	{
		code: domain.CheckBadViewBox,
		msg:  "has incorrect viewBox",
		fails: func(n svgx.Node) bool {
			v, _ := n.Attr("viewBox")
			return v != ViewBox
		},
	},
}

// 软性检查：只告警，不影响有效性。
var nodeWarnings = []nodeCheck{
	{
		code: domain.CheckNonPathChildren,
		msg:  "has non-path elements",
		fails: func(n svgx.Node) bool {
			for _, c := range n.Children {
				if c.Name != "path" {
					return true
				}
			}
			return false
		},
	},
}

type iconCheck struct {
	code  string
	msg   string
	fails func(v Validator, m domain.IconMetadata) bool
}

var iconChecks = []iconCheck{
	{
		code: domain.CheckBadCodepoint,
		msg:  "is not assigned a valid codepoint",
		fails: func(_ Validator, m domain.IconMetadata) bool {
			return m.Codepoint == nil || *m.Codepoint < PUAStart || *m.Codepoint > PUAEnd
		},
	},
	{
		code: domain.CheckBadCategory,
		msg:  "is not assigned a valid category",
		fails: func(v Validator, m domain.IconMetadata) bool {
			if m.Category == "" {
				return true
			}
			_, err := v.Categories.Resolve(m.Category)
			return err != nil
		},
	},
	{
		code: domain.CheckBadVersion,
		msg:  "has invalid version",
		fails: func(v Validator, m domain.IconMetadata) bool {
			pub, ok := presentVersion(m.PublishedIn)
			if !ok {
				return true
			}
			upd, ok := presentVersion(m.UpdatedIn)
			if !ok {
				return true
			}
			return pub.Compare(v.Current) > 0 ||
				upd.Compare(v.Current) > 0 ||
				pub.Compare(upd) > 0
		},
	},
}

var iconWarnings = []iconCheck{
	{
		code: domain.CheckUnknownStatus,
		msg:  "has unknown status",
		fails: func(_ Validator, m domain.IconMetadata) bool {
			return !m.Status.Valid()
		},
	},
}

type envelopeCheck struct {
	code  string
	msg   string
	fails func(v Validator, r domain.APIResponse) bool
}

var envelopeChecks = []envelopeCheck{
	{
		code: domain.CheckBadCount,
		msg:  "incorrect icon count",
		fails: func(_ Validator, r domain.APIResponse) bool {
			return r.Count != len(r.Icons)
		},
	},
	{
		code: domain.CheckBadAPIVersion,
		msg:  "invalid API version",
		fails: func(v Validator, r domain.APIResponse) bool {
			got, ok := domain.FromFloat(r.Version)
			return !ok || got != v.Current
		},
	},
}

// presentVersion 把可选的小数版本转为 NumericVersion。
// 缺失、0 或不是 0.1 整数倍的值都视为无效。
func presentVersion(f *float64) (domain.NumericVersion, bool) {
	if f == nil || *f == 0 {
		return domain.NumericVersion{}, false
	}
	return domain.FromFloat(*f)
}
