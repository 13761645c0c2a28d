package domain

import "strings"

// Weight 是图标的字重（风格变体）。
type Weight string

const (
	WeightRegular Weight = "regular"
	WeightThin    Weight = "thin"
	WeightLight   Weight = "light"
	WeightBold    Weight = "bold"
	WeightFill    Weight = "fill"
	WeightDuotone Weight = "duotone"
)

// Weights 按固定顺序列出全部字重。
var Weights = []Weight{WeightRegular, WeightThin, WeightLight, WeightBold, WeightFill, WeightDuotone}

// ParseWeight 校验 s 是否是已知字重（大小写敏感：目录名必须与枚举值完全一致）。
func ParseWeight(s string) (Weight, bool) {
	for _, w := range Weights {
		if string(w) == s {
			return w, true
		}
	}
	return "", false
}

// Suffix 返回文件名上的字重后缀；regular 没有后缀。
func (w Weight) Suffix() string {
	if w == WeightRegular {
		return ""
	}
	return "-" + string(w)
}

// Subject 返回 (name, weight) 组合在诊断输出中的展示名，例如 "acorn-bold"。
func (w Weight) Subject(name string) string {
	return strings.TrimSpace(name) + w.Suffix()
}
