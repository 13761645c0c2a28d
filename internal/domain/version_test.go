package domain

import "testing"

func TestParseRelease(t *testing.T) {
	cases := map[string]NumericVersion{
		"2.1":    {Major: 2, Minor: 1},
		"2.1.3":  {Major: 2, Minor: 1},
		"v2.0.0": {Major: 2, Minor: 0},
		" 1.9 ":  {Major: 1, Minor: 9},
	}
	for in, want := range cases {
		got, err := ParseRelease(in)
		if err != nil {
			t.Fatalf("%q：不期望错误：%v", in, err)
		}
		if got != want {
			t.Fatalf("%q：期望 %v，实际 %v", in, want, got)
		}
	}
}

func TestParseRelease_RejectsUnencodableMinor(t *testing.T) {
	// 2.10 在 major+minor/10 编码下会变成 2.1，必须显式拒绝。
	if _, err := ParseRelease("2.10.0"); err == nil {
		t.Fatalf("期望 minor>=10 报错，但得到 nil")
	}
	for _, in := range []string{"", "2", "x.1", "2.y"} {
		if _, err := ParseRelease(in); err == nil {
			t.Fatalf("%q：期望错误，但得到 nil", in)
		}
	}
}

func TestFromFloat(t *testing.T) {
	v, ok := FromFloat(2.1)
	if !ok || v != (NumericVersion{Major: 2, Minor: 1}) {
		t.Fatalf("期望 2.1，实际 %v ok=%v", v, ok)
	}
	if _, ok := FromFloat(2.15); ok {
		t.Fatalf("2.15 不是 0.1 的整数倍，应返回 ok=false")
	}
	if _, ok := FromFloat(-1); ok {
		t.Fatalf("负数应返回 ok=false")
	}
}

func TestNumericVersion_Compare(t *testing.T) {
	a := NumericVersion{Major: 1, Minor: 9}
	b := NumericVersion{Major: 2, Minor: 0}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Fatalf("Compare 结果不正确")
	}
	if b.String() != "2.0" {
		t.Fatalf("期望 String()=2.0，实际 %q", b.String())
	}
}

func TestWeight_SuffixAndParse(t *testing.T) {
	if WeightRegular.Suffix() != "" || WeightBold.Suffix() != "-bold" {
		t.Fatalf("Suffix 不符合约定")
	}
	if WeightDuotone.Subject("acorn") != "acorn-duotone" || WeightRegular.Subject("acorn") != "acorn" {
		t.Fatalf("Subject 不符合约定")
	}
	if _, ok := ParseWeight("Bold"); ok {
		t.Fatalf("目录名大小写敏感，Bold 不应被接受")
	}
	if w, ok := ParseWeight("fill"); !ok || w != WeightFill {
		t.Fatalf("期望 fill，实际 %q ok=%v", w, ok)
	}
}
