package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/John-Robertt/iconpipe/internal/api"
	"github.com/John-Robertt/iconpipe/internal/app/run"
	"github.com/John-Robertt/iconpipe/internal/collate"
	"github.com/John-Robertt/iconpipe/internal/config"
	"github.com/John-Robertt/iconpipe/internal/domain"
)

const appName = "iconpipe"

func main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage()
		return
	}

	var code int
	switch args[0] {
	case run.CommandCatalog:
		code = catalogCmd(args[1:])
	case run.CommandVerify:
		code = verifyCmd(args[1:])
	case run.CommandCollate:
		code = collateCmd(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "未知命令：%q\n\n", args[0])
		printUsage()
		code = 2
	}
	if code != 0 {
		os.Exit(code)
	}
}

func catalogCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printCatalogUsage()
			return 0
		}
	}

	q, err := parseCatalogArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printCatalogUsage()
		return 2
	}

	ui := newStdTerminal()
	eff, code := loadConfig(ui, run.CommandCatalog)
	if code != 0 {
		return code
	}

	rr := run.Catalog(context.Background(), eff, q, ui)
	ui.emitReport(rr)
	return exitCode(rr)
}

func verifyCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printVerifyUsage()
			return 0
		}
	}
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "参数错误：verify 不接受参数，实际是 %q\n\n", args[0])
		printVerifyUsage()
		return 2
	}

	ui := newStdTerminal()
	eff, code := loadConfig(ui, run.CommandVerify)
	if code != 0 {
		return code
	}

	rr := run.Verify(eff, ui)
	ui.emitReport(rr)
	return exitCode(rr)
}

func collateCmd(args []string) int {
	for _, a := range args {
		if isHelp(a) {
			printCollateUsage()
			return 0
		}
	}

	opts, err := collate.ParseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		printCollateUsage()
		return 2
	}

	ui := newStdTerminal()
	rr := run.Collate(opts, ui)
	ui.emitReport(rr)
	return exitCode(rr)
}

// loadConfig 读取配置；失败时直接输出一个只含 error_code 的报告。
func loadConfig(ui *terminal, command string) (config.EffectiveConfig, int) {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		return config.EffectiveConfig{}, 1
	}
	eff, err := config.LoadEffective(cwd)
	if err != nil {
		ui.emitReport(reportForConfigError(command, err))
		return config.EffectiveConfig{}, 1
	}
	return eff, 0
}

// parseCatalogArgs 解析 catalog 的查询参数；只有显式给出的参数会发给 API。
// -p/--published 与 -P/--no-published 同时出现时以最后一个为准。
func parseCatalogArgs(args []string) (api.Query, error) {
	var q api.Query

	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s 需要一个值", name)
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		a := args[i]
		var err error
		switch {
		case a == "-r" || a == "--release":
			q.Release, err = value(&i, a)
		case strings.HasPrefix(a, "--release="):
			q.Release = strings.TrimPrefix(a, "--release=")
		case a == "-q" || a == "--query":
			q.Query, err = value(&i, a)
		case strings.HasPrefix(a, "--query="):
			q.Query = strings.TrimPrefix(a, "--query=")
		case a == "-n" || a == "--name":
			q.Name, err = value(&i, a)
		case strings.HasPrefix(a, "--name="):
			q.Name = strings.TrimPrefix(a, "--name=")
		case a == "-p" || a == "--published":
			v := true
			q.Published = &v
		case a == "-P" || a == "--no-published":
			v := false
			q.Published = &v
		case strings.HasPrefix(a, "-"):
			return api.Query{}, fmt.Errorf("未知参数 %q", a)
		default:
			return api.Query{}, fmt.Errorf("catalog 不接受位置参数，实际是 %q", a)
		}
		if err != nil {
			return api.Query{}, err
		}
	}

	if q.Release != "" {
		if _, err := domain.ParseRelease(q.Release); err != nil {
			return api.Query{}, fmt.Errorf("--release：%w", err)
		}
	}
	return q, nil
}

func exitCode(rr domain.Report) int {
	if rr.OK() {
		return 0
	}
	return 1
}

func reportForConfigError(command string, err error) domain.Report {
	now := time.Now().UTC()
	rr := domain.Report{
		Command:    command,
		StartedAt:  now,
		FinishedAt: now,
		ErrorCode:  config.Code(err),
		ErrorMsg:   err.Error(),
	}
	if rr.ErrorCode == "" {
		rr.ErrorCode = domain.ErrCodeConfigInvalid
	}
	rr.Finalize()
	return rr
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage() {
	fmt.Fprintf(os.Stdout, `用法：
  %[1]s catalog [-r <version>] [-p|-P] [-q <text>] [-n <name>]
  %[1]s verify
  %[1]s collate [source-dir] [svg|png] [raw|flat]

命令：
  catalog  校验资产、拉取图标元数据并生成目录模块
  verify   只校验本地资产树
  collate  把扁平导出的 SVG/PNG 整理进字重目录

使用 "%[1]s <命令> --help" 查看详细说明。
`, appName)
}

func printCatalogUsage() {
	fmt.Fprintf(os.Stdout, `用法：
  %s catalog [-r <version>] [-p|-P] [-q <text>] [-n <name>]

参数：
  -r, --release <version>  只拉取该发布号的图标
  -p, --published          只拉取已发布的图标
  -P, --no-published       只拉取未发布的图标
  -q, --query <text>       全文检索
  -n, --name <name>        按名称精确匹配
  -h, --help               显示帮助

长参数也支持 --name=value 形式。配置来源：环境变量 ICONPIPE_*、%s、package.json。
`, appName, config.FileName)
}

func printVerifyUsage() {
	fmt.Fprintf(os.Stdout, `用法：
  %s verify

校验 assets_path 下的资产树（字重目录、viewBox、currentColor）。
`, appName)
}

func printCollateUsage() {
	fmt.Fprintf(os.Stdout, `用法：
  %s collate [source-dir] [svg|png] [raw|flat]

参数（按位置，均可省略）：
  source-dir  扁平导出目录（默认 %s）
  svg|png     要整理的文件类型（默认 svg）
  raw|flat    raw：#000 改写为 currentColor；flat：在 <svg> 上追加 fill="currentColor"（默认 raw）
`, appName, collate.DefaultSource)
}
