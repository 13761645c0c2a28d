package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/John-Robertt/iconpipe/internal/domain"
	"github.com/John-Robertt/iconpipe/internal/iconname"
)

// BadFolderError 表示资产根目录下出现了不是字重名的子目录。
// 这是配置错误而不是数据错误：上层必须立即终止，不做聚合。
type BadFolderError struct {
	Root string
	Name string
}

func (e *BadFolderError) Error() string {
	return fmt.Sprintf("Bad folder name %s", e.Name)
}

// IsBadFolder 判断 err 是否为 BadFolderError。
func IsBadFolder(err error) bool {
	var e *BadFolderError
	return errors.As(err, &e)
}

// ScanAssets 列出 root/<weight>/ 下的全部资产文件。
//
// 规则（硬约束）：
// - root 下的每个子目录都必须是六种字重之一，否则返回 *BadFolderError（在读取任何文件之前）
// - root 下的普通文件被忽略
// - 字重目录内只取普通文件，跳过以 '.' 开头的隐藏文件（.DS_Store 等）
//
// 注意：扫描阶段只做 ReadDir，不读文件内容。
func ScanAssets(root string) ([]domain.AssetFile, error) {
	root = filepath.Clean(root)

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	// 先整体校验目录名，保证“坏目录”在任何解析之前就被发现。
	weights := make([]domain.Weight, 0, len(entries))
	for _, e := range entries {
		if !isDir(root, e) {
			continue
		}
		w, ok := domain.ParseWeight(e.Name())
		if !ok {
			return nil, &BadFolderError{Root: root, Name: e.Name()}
		}
		weights = append(weights, w)
	}

	files := make([]domain.AssetFile, 0, 256)
	for _, w := range weights {
		dir := filepath.Join(root, string(w))
		des, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, d := range des {
			name := d.Name()
			if strings.HasPrefix(name, ".") || !d.Type().IsRegular() {
				continue
			}
			files = append(files, domain.AssetFile{
				AbsPath: filepath.Join(dir, name),
				RelPath: filepath.Join(string(w), name),
				Weight:  w,
				Name:    iconname.FromFile(name, w),
			})
		}
	}

	// 强制稳定输出，避免不同平台/文件系统行为差异带来的不确定性。
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// ScanSources 列出 dir 下（不递归）扩展名为 ext 的普通文件名，已排序。
// ext 不带点，例如 "svg"；大小写敏感。
func ScanSources(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	suffix := "." + ext
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// isDir 按 lstat 语义判断：指向目录的符号链接不算目录。
func isDir(root string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink != 0 {
		return false
	}
	fi, err := os.Lstat(filepath.Join(root, e.Name()))
	return err == nil && fi.IsDir()
}
