package category

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultTable []byte

// UnknownCategoryError 表示分类名不在封闭集合中（包括空串）。
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	if strings.TrimSpace(e.Name) == "" {
		return "缺少分类"
	}
	return fmt.Sprintf("未知分类：%q", e.Name)
}

// IsUnknown 判断 err 是否为 UnknownCategoryError。
func IsUnknown(err error) bool {
	var e *UnknownCategoryError
	return errors.As(err, &e)
}

type fileTable struct {
	Categories []struct {
		Name string `yaml:"name"`
		Key  string `yaml:"key"`
	} `yaml:"categories"`
	Aliases map[string]string `yaml:"aliases"`
}

// Map 是只读的“分类名 -> 规范键”映射，进程启动时加载一次后注入使用方。
// 零值 Map 不包含任何分类（所有 Resolve 都会失败）。
type Map struct {
	byName  map[string]string
	aliases map[string]string
}

// Default 加载内置分类表。内置表在编译期固定，解析失败属于编程错误。
func Default() Map {
	m, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("category: 内置分类表无效：%v", err))
	}
	return m
}

// Parse 解析 YAML 分类表。
//
// 约束：name/key 均不能为空；name 不能重复；key 会去掉首尾空白。
func Parse(b []byte) (Map, error) {
	var ft fileTable
	if err := yaml.Unmarshal(b, &ft); err != nil {
		return Map{}, fmt.Errorf("解析分类表失败：%w", err)
	}

	byName := make(map[string]string, len(ft.Categories))
	for i, c := range ft.Categories {
		name := strings.TrimSpace(c.Name)
		key := strings.TrimSpace(c.Key)
		if name == "" {
			return Map{}, fmt.Errorf("第 %d 个分类缺少 name", i+1)
		}
		if key == "" {
			return Map{}, fmt.Errorf("分类 %q 缺少 key", name)
		}
		if _, ok := byName[name]; ok {
			return Map{}, fmt.Errorf("重复的分类：%q", name)
		}
		byName[name] = key
	}

	aliases := make(map[string]string, len(ft.Aliases))
	for name, legacy := range ft.Aliases {
		name = strings.TrimSpace(name)
		legacy = strings.TrimSpace(legacy)
		if name == "" || legacy == "" {
			return Map{}, fmt.Errorf("别名表存在空条目：%q -> %q", name, legacy)
		}
		aliases[name] = legacy
	}

	return Map{byName: byName, aliases: aliases}, nil
}

// Resolve 返回分类名对应的规范键。大小写与空白都必须与表中一致（不做“聪明”的归一化）。
func (m Map) Resolve(name string) (string, error) {
	key, ok := m.byName[name]
	if !ok {
		return "", &UnknownCategoryError{Name: name}
	}
	return key, nil
}

// LegacyAlias 返回改名图标的旧名。
func (m Map) LegacyAlias(name string) (string, bool) {
	a, ok := m.aliases[name]
	return a, ok
}
