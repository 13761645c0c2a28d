// Package catalog 把校验过的图标记录渲染为 TypeScript 目录模块。
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/John-Robertt/iconpipe/internal/category"
	"github.com/John-Robertt/iconpipe/internal/domain"
	"github.com/John-Robertt/iconpipe/internal/iconname"
)

const (
	TagNew     = "*new*"
	TagUpdated = "*updated*"
)

// Alias 是改名图标的旧名。
type Alias struct {
	Name       string
	PascalName string
}

// Entry 是输出模块中的一项；字段已经是最终要写出的形态。
type Entry struct {
	Name          string
	PascalName    string
	Alias         *Alias
	Categories    []string
	FigmaCategory string
	Tags          []string
	Codepoint     int
	PublishedIn   float64
	UpdatedIn     float64
}

// Generator 持有渲染所需的只读输入。
type Generator struct {
	Categories category.Map
	Current    domain.NumericVersion
}

// Entry 把一条记录转换为输出项。
// 记录应当已经通过校验；分类无法解析时仍然返回错误，而不是写出非法的枚举引用。
func (g Generator) Entry(m domain.IconMetadata) (Entry, error) {
	key, err := g.Categories.Resolve(m.Category)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %w", m.Name, err)
	}

	e := Entry{
		Name:          m.Name,
		PascalName:    iconname.Pascalize(m.Name),
		FigmaCategory: key,
		Categories:    make([]string, 0, len(m.SearchCategories)),
		PublishedIn:   deref(m.PublishedIn),
		UpdatedIn:     deref(m.UpdatedIn),
	}
	if m.Codepoint != nil {
		e.Codepoint = *m.Codepoint
	}

	alias := m.Alias
	if alias == "" {
		alias, _ = g.Categories.LegacyAlias(m.Name)
	}
	if alias != "" {
		e.Alias = &Alias{Name: alias, PascalName: iconname.Pascalize(alias)}
	}

	for _, c := range m.SearchCategories {
		e.Categories = append(e.Categories, strings.ToUpper(c))
	}

	e.Tags = make([]string, 0, len(m.Tags)+1)
	switch {
	case g.isCurrent(m.PublishedIn):
		e.Tags = append(e.Tags, TagNew)
	case g.isCurrent(m.UpdatedIn):
		e.Tags = append(e.Tags, TagUpdated)
	}
	e.Tags = append(e.Tags, m.Tags...)

	return e, nil
}

func (g Generator) isCurrent(f *float64) bool {
	if f == nil {
		return false
	}
	v, ok := domain.FromFloat(*f)
	return ok && v == g.Current
}

// Build 按输入顺序转换全部记录（排序由调用方负责）。
func (g Generator) Build(icons []domain.IconMetadata) ([]Entry, error) {
	out := make([]Entry, 0, len(icons))
	for _, m := range icons {
		e, err := g.Entry(m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Render 把 entries 写成 TypeScript 模块。
func (g Generator) Render(w io.Writer, entries []Entry) error {
	return moduleTmpl.Execute(w, entries)
}

// Generate 是 Build + Render 的组合，返回完整文件内容。
func (g Generator) Generate(icons []domain.IconMetadata) ([]byte, error) {
	entries, err := g.Build(icons)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := g.Render(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// jsonLiteral 输出 JSON 字面量；不做 HTML 转义（标签里的 & 保持原样，不写成 \u0026）。
func jsonLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func oneDecimal(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

var moduleTmpl = template.Must(template.New("icons.ts").Funcs(template.FuncMap{
	"json":    jsonLiteral,
	"version": oneDecimal,
}).Parse(moduleSource))

const moduleSource = `// Code generated by iconpipe. DO NOT EDIT.
import { IconEntry, IconCategory, FigmaCategory } from "./types";

export type PhosphorIcon = (typeof icons)[number];

export const icons = <const>[
{{- range .}}
  {
    name: {{json .Name}},
    pascal_name: {{json .PascalName}},
{{- with .Alias}}
    alias: { name: {{json .Name}}, pascal_name: {{json .PascalName}} },
{{- end}}
    categories: [{{range .Categories}}IconCategory.{{.}},{{end}}],
    figma_category: FigmaCategory.{{.FigmaCategory}},
    tags: {{json .Tags}},
    codepoint: {{.Codepoint}},
    published_in: {{version .PublishedIn}},
    updated_in: {{version .UpdatedIn}},
  },
{{- end}}
] satisfies readonly IconEntry[];
`
