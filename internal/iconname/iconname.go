// Package iconname 负责文件名与图标名之间的换算：
// 资产文件名 -> (图标名, 字重)，以及图标名 -> PascalCase 标识符。
package iconname

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/John-Robertt/iconpipe/internal/domain"
)

// FromFile 从字重目录中的文件名推导图标名。
//
// 规则：去掉扩展名；若最后一个 '-' 段恰好等于所在目录的字重名，再去掉该段。
// regular 字重的文件不带后缀，因此 "arrow-up.svg" 在 regular 目录下就是 "arrow-up"。
func FromFile(filename string, w domain.Weight) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "-")
	if len(parts) > 1 && parts[len(parts)-1] == string(w) {
		return strings.Join(parts[:len(parts)-1], "-")
	}
	return base
}

// WeightOf 从扁平导出的文件名推导字重（collate 使用）。
// 只有 thin/light/bold/fill/duotone 会被识别；其余一律视为 regular。
func WeightOf(filename string) domain.Weight {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(base, "-")
	last := parts[len(parts)-1]
	if w, ok := domain.ParseWeight(last); ok && w != domain.WeightRegular {
		return w
	}
	return domain.WeightRegular
}

// Pascalize 把 "arrow-up-right" 变成 "ArrowUpRight"：按 '-' 切段，每段首字母大写，其余保持原样。
func Pascalize(name string) string {
	// Caser 有内部状态，不能跨 goroutine 共享。
	titler := cases.Title(language.Und, cases.NoLower)
	parts := strings.Split(name, "-")
	for i, p := range parts {
		parts[i] = titler.String(p)
	}
	return strings.Join(parts, "")
}
