// Package verify 对资产树与目录 API 响应做结构校验。
//
// 校验器不打印任何东西：每项检查产出一条 domain.Diagnostic，整体结果以计数错误
// （*AssetsError / *EnvelopeError / *MetadataError）返回，由调用方决定是否继续后续步骤
// （例如生成 catalog）。唯一不聚合的情况是资产根目录下出现非字重目录：
// 它以 *scan.BadFolderError 原样返回，调用方应立即终止。
package verify
