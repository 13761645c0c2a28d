package iconname

import (
	"testing"

	"github.com/John-Robertt/iconpipe/internal/domain"
)

func TestFromFile_StripsWeightSuffix(t *testing.T) {
	cases := []struct {
		file string
		w    domain.Weight
		want string
	}{
		{"arrow-up.svg", domain.WeightRegular, "arrow-up"},
		{"arrow-up-bold.svg", domain.WeightBold, "arrow-up"},
		{"acorn-duotone.svg", domain.WeightDuotone, "acorn"},
		// 后缀与目录字重不一致：保持原样（不会误删其他字重名）。
		{"acorn-fill.svg", domain.WeightBold, "acorn-fill"},
		// 名字本身就是字重名时不能被截成空串。
		{"fill.svg", domain.WeightFill, "fill"},
		{"paint-bucket-fill.svg", domain.WeightFill, "paint-bucket"},
	}
	for _, c := range cases {
		if got := FromFile(c.file, c.w); got != c.want {
			t.Fatalf("%s@%s：期望 %q，实际 %q", c.file, c.w, c.want, got)
		}
	}
}

func TestWeightOf(t *testing.T) {
	if w := WeightOf("acorn-bold.svg"); w != domain.WeightBold {
		t.Fatalf("期望 bold，实际 %q", w)
	}
	if w := WeightOf("acorn.png"); w != domain.WeightRegular {
		t.Fatalf("期望 regular，实际 %q", w)
	}
	// "-regular" 后缀不是约定的一部分：仍然是 regular，但文件名不变。
	if w := WeightOf("acorn-regular.svg"); w != domain.WeightRegular {
		t.Fatalf("期望 regular，实际 %q", w)
	}
}

func TestPascalize(t *testing.T) {
	cases := map[string]string{
		"arrow-up-right":  "ArrowUpRight",
		"acorn":           "Acorn",
		"number-circle-2": "NumberCircle2",
		"x-square":        "XSquare",
		"":                "",
	}
	for in, want := range cases {
		if got := Pascalize(in); got != want {
			t.Fatalf("%q：期望 %q，实际 %q", in, want, got)
		}
	}
}
