package svgx

import (
	"errors"
	"testing"
)

func childNames(n Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestParse_RootAttrsAndChildren(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256" fill="currentColor">
  <!-- comment -->
  <rect width="256" height="256" fill="none"/>
  <path d="M128,24a104,104,0,1,0,104,104A104.11,104.11,0,0,0,128,24Z"/>
</svg>`

	n, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if n.Name != "svg" {
		t.Fatalf("期望根节点 svg，实际 %q", n.Name)
	}
	if v, ok := n.Attr("viewBox"); !ok || v != "0 0 256 256" {
		t.Fatalf("期望 viewBox=\"0 0 256 256\"，实际 %q ok=%v", v, ok)
	}
	if v, _ := n.Attr("fill"); v != "currentColor" {
		t.Fatalf("期望 fill=currentColor，实际 %q", v)
	}
	names := childNames(n)
	if len(names) != 2 || names[0] != "rect" || names[1] != "path" {
		t.Fatalf("期望子元素 [rect path]，实际 %v", names)
	}
}

func TestParse_PreservesCase(t *testing.T) {
	n, err := Parse([]byte(`<svg viewbox="0 0 256 256" FILL="currentColor"><PATH d="M0 0"/></svg>`))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if _, ok := n.Attr("viewBox"); ok {
		t.Fatalf("小写 viewbox 不应被改写为 viewBox")
	}
	if _, ok := n.Attr("fill"); ok {
		t.Fatalf("大写 FILL 不应被改写为 fill")
	}
	if names := childNames(n); len(names) != 1 || names[0] != "PATH" {
		t.Fatalf("期望子元素 [PATH]，实际 %v", names)
	}
}

func TestParse_KeepsNonSVGChildrenInPlace(t *testing.T) {
	n, err := Parse([]byte(`<svg viewBox="0 0 256 256"><p>text</p><path d="M0 0"/></svg>`))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if names := childNames(n); len(names) != 2 || names[0] != "p" || names[1] != "path" {
		t.Fatalf("期望子元素 [p path]，实际 %v", names)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, src := range []string{
		`<svg viewBox="0 0 256 256"><path d="M0 0"/></svg`,
		`<svg viewBox="0 0 256 256"><path d="M0 0"/>`,
		`<svg viewBox="0 0 256 256"><path d="M0 0"></svg>`,
		`<svg/><svg/>`,
	} {
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatalf("%q：期望解析错误，实际 nil", src)
		}
	}
}

func TestParse_NoSVGRoot(t *testing.T) {
	for _, src := range []string{`<div>not an icon</div>`, `not markup`, ``} {
		_, err := Parse([]byte(src))
		if !errors.Is(err, ErrNoRoot) {
			t.Fatalf("%q：期望 ErrNoRoot，实际 %v", src, err)
		}
	}
}

func TestParse_MissingAttr(t *testing.T) {
	n, err := Parse([]byte(`<svg><path d="M0 0"/></svg>`))
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if _, ok := n.Attr("fill"); ok {
		t.Fatalf("不应存在 fill 属性")
	}
}
