// Package collate 把设计工具导出的扁平文件整理进字重目录，并把颜色改写为 currentColor。
//
// 每个文件独立处理：读入 -> 变换 -> 原子写入 <source>/<weight>/<file>。源文件保留原位。
package collate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/John-Robertt/iconpipe/internal/iconname"
	"github.com/John-Robertt/iconpipe/internal/infra/fsx"
	"github.com/John-Robertt/iconpipe/internal/scan"
)

// FileType 是要整理的文件类型。
type FileType string

const (
	TypeSVG FileType = "svg"
	TypePNG FileType = "png"
)

// Mode 决定 SVG 的改写方式。
type Mode string

const (
	// ModeRaw 把黑色字面量（#0、#000、#000000 …）替换为 currentColor。
	ModeRaw Mode = "raw"
	// ModeFlat 在每个带属性的 <svg …> 开标签上追加 fill="currentColor"。
	ModeFlat Mode = "flat"
)

const DefaultSource = "./SVGs"

// ArgError 表示位置参数无效（CLI 以用法错误处理）。
type ArgError struct {
	Kind  string
	Value string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("Invalid %s %s", e.Kind, e.Value)
}

func IsArgError(err error) bool {
	var e *ArgError
	return errors.As(err, &e)
}

// Options 是一次整理的输入。
type Options struct {
	Source string
	Type   FileType
	Mode   Mode
}

// ParseArgs 解析 [source-dir] [svg|png] [raw|flat]；缺省项取默认值，枚举不区分大小写。
// 显式给出的 source 必须是已存在的目录（符号链接不算）。
func ParseArgs(args []string) (Options, error) {
	opts := Options{Source: DefaultSource, Type: TypeSVG, Mode: ModeRaw}
	if len(args) > 3 {
		return Options{}, &ArgError{Kind: "argument", Value: args[3]}
	}

	if len(args) > 0 && args[0] != "" {
		fi, err := os.Lstat(args[0])
		if err != nil || !fi.IsDir() {
			return Options{}, &ArgError{Kind: "destination", Value: args[0]}
		}
		opts.Source = args[0]
	}
	if len(args) > 1 && args[1] != "" {
		switch t := FileType(strings.ToLower(args[1])); t {
		case TypeSVG, TypePNG:
			opts.Type = t
		default:
			return Options{}, &ArgError{Kind: "file type", Value: args[1]}
		}
	}
	if len(args) > 2 && args[2] != "" {
		switch m := Mode(strings.ToLower(args[2])); m {
		case ModeRaw, ModeFlat:
			opts.Mode = m
		default:
			return Options{}, &ArgError{Kind: "svg type", Value: args[2]}
		}
	}
	return opts, nil
}

var (
	blackLiteralRe = regexp.MustCompile(`#0+\b`)
	svgOpenTagRe   = regexp.MustCompile(`<svg ([^>]*)>`)
)

// Transform 对整份文件内容做改写；png 原样返回。
func Transform(b []byte, t FileType, m Mode) []byte {
	if t != TypeSVG {
		return b
	}
	switch m {
	case ModeFlat:
		return svgOpenTagRe.ReplaceAll(b, []byte(`<svg $1 fill="currentColor">`))
	default:
		return blackLiteralRe.ReplaceAll(b, []byte("currentColor"))
	}
}

// Run 处理 Source 下（不递归）所有匹配 Type 的文件，返回已写出的目标路径。
//
// onWritten 可为 nil；每写出一个文件调用一次。遇到第一个错误即停止，已写出的路径照常返回。
func Run(opts Options, onWritten func(path string)) ([]string, error) {
	names, err := scan.ScanSources(opts.Source, string(opts.Type))
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		w := iconname.WeightOf(name)
		dir := filepath.Join(opts.Source, string(w))

		b, err := os.ReadFile(filepath.Join(opts.Source, name))
		if err != nil {
			return written, err
		}
		if err := fsx.EnsureDir(dir); err != nil {
			return written, err
		}
		if err := fsx.WriteFileAtomic(dir, name, Transform(b, opts.Type, opts.Mode)); err != nil {
			return written, err
		}

		dst := filepath.Join(dir, name)
		written = append(written, dst)
		if onWritten != nil {
			onWritten(dst)
		}
	}
	return written, nil
}
