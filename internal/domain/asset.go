package domain

// AssetFile 描述资产树里的一个文件（扫描阶段只做 stat，不读内容）。
//
// 不变量：
// - AbsPath 必须是 clean + absolute
// - Weight 来自所在目录名，Name 由文件名推导（已去掉扩展名与字重后缀）
type AssetFile struct {
	AbsPath string
	RelPath string
	Weight  Weight
	Name    string
}
