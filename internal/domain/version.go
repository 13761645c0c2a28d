package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxMinor 是十进制编码能表示的最大 minor。
// major + minor/10 的编码下，2.10 与 2.1 会撞车，所以 minor 必须 <= 9。
const MaxMinor = 9

// NumericVersion 是 "major.minor" 的结构化表示；API 侧以 major + minor/10 的小数传输。
type NumericVersion struct {
	Major int
	Minor int
}

// ParseRelease 从发布号（"2.1"、"2.1.3"、"v2.1.0"）解析出 NumericVersion。
// patch 段被忽略；minor > MaxMinor 时返回错误而不是静默截断。
func ParseRelease(s string) (NumericVersion, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return NumericVersion{}, fmt.Errorf("发布号必须形如 major.minor，实际是 %q", s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return NumericVersion{}, fmt.Errorf("发布号 major 无效：%q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return NumericVersion{}, fmt.Errorf("发布号 minor 无效：%q", s)
	}
	if minor > MaxMinor {
		return NumericVersion{}, fmt.Errorf("发布号 %q 的 minor=%d 超出 major+minor/10 编码范围（最大 %d）", s, minor, MaxMinor)
	}
	return NumericVersion{Major: major, Minor: minor}, nil
}

// FromFloat 把 API 的小数版本转回 NumericVersion。
// 只接受 0.1 的整数倍；其他值（例如 2.15）返回 ok=false。
func FromFloat(f float64) (NumericVersion, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return NumericVersion{}, false
	}
	tenths := math.Round(f * 10)
	if math.Abs(f*10-tenths) > 1e-6 {
		return NumericVersion{}, false
	}
	t := int(tenths)
	return NumericVersion{Major: t / 10, Minor: t % 10}, true
}

// Compare 返回 -1/0/1。
func (v NumericVersion) Compare(o NumericVersion) int {
	switch {
	case v.Major != o.Major:
		if v.Major < o.Major {
			return -1
		}
		return 1
	case v.Minor != o.Minor:
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// IsZero 表示未设置。
func (v NumericVersion) IsZero() bool { return v.Major == 0 && v.Minor == 0 }

// String 输出一位小数的形态，例如 "2.1"。
func (v NumericVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
