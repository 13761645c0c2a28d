package category

import (
	"strings"
	"testing"
)

func TestDefault_ResolvesKnownNames(t *testing.T) {
	m := Default()

	key, err := m.Resolve("Health & Wellness")
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if key != "HEALTH" {
		t.Fatalf("期望 HEALTH，实际 %q", key)
	}

	key, err = m.Resolve("Communication")
	if err != nil || key != "COMMUNICATION" {
		t.Fatalf("期望 COMMUNICATION，实际 %q err=%v", key, err)
	}

	if len(m.byName) != 18 {
		t.Fatalf("期望 18 个分类，实际 %d", len(m.byName))
	}
}

func TestResolve_UnknownAndEmpty(t *testing.T) {
	m := Default()

	for _, name := range []string{"Unknown", "", "health & wellness"} {
		_, err := m.Resolve(name)
		if !IsUnknown(err) {
			t.Fatalf("%q：期望 UnknownCategoryError，实际 %v", name, err)
		}
	}
}

func TestLegacyAlias(t *testing.T) {
	m := Default()
	if a, ok := m.LegacyAlias("pulse"); !ok || a != "activity" {
		t.Fatalf("期望 pulse -> activity，实际 %q ok=%v", a, ok)
	}
	if _, ok := m.LegacyAlias("acorn"); ok {
		t.Fatalf("acorn 不应有旧名")
	}
}

func TestParse_RejectsDuplicateAndEmpty(t *testing.T) {
	dup := []byte("categories:\n  - {name: A, key: X}\n  - {name: A, key: Y}\n")
	if _, err := Parse(dup); err == nil || !strings.Contains(err.Error(), "重复") {
		t.Fatalf("期望重复分类错误，实际 %v", err)
	}

	noKey := []byte("categories:\n  - {name: A, key: \"  \"}\n")
	if _, err := Parse(noKey); err == nil {
		t.Fatalf("期望缺少 key 的错误，但得到 nil")
	}

	if _, err := Parse([]byte("categories: [")); err == nil {
		t.Fatalf("期望 YAML 解析错误，但得到 nil")
	}
}

func TestZeroMap_ResolvesNothing(t *testing.T) {
	var m Map
	if _, err := m.Resolve("Arrows"); !IsUnknown(err) {
		t.Fatalf("零值 Map 应拒绝所有分类，实际 %v", err)
	}
}
