package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/John-Robertt/iconpipe/internal/app/run"
	"github.com/John-Robertt/iconpipe/internal/config"
	"github.com/John-Robertt/iconpipe/internal/domain"
)

var _ run.Observer = (*terminal)(nil)

type label string

const (
	labelFail label = " FAIL "
	labelWarn label = " WARN "
	labelDone label = " DONE "
)

// 反色标签；终端之外一律不上色。
var labelColor = map[label]string{
	labelFail: "\x1b[7;31m",
	labelWarn: "\x1b[7;33m",
	labelDone: "\x1b[7;32m",
}

const colorReset = "\x1b[0m"

// terminal 负责全部人类可读输出，同时实现 run.Observer。
//
// 输出契约：
// - stdout 是终端：FAIL/WARN 写 stderr，DONE 与摘要写 stdout
// - stdout 不是终端：stdout 只输出一个 Report JSON，其余内容全部写 stderr 且不上色
type terminal struct {
	mu sync.Mutex

	out io.Writer // DONE / 摘要
	err io.Writer // FAIL / WARN / 阶段信息
	// jsonOut 非空时表示 stdout 不是终端。
	jsonOut io.Writer

	outColor bool
	errColor bool
}

func newStdTerminal() *terminal {
	return newTerminal(os.Stdout, os.Stderr, isTTY(os.Stdout), isTTY(os.Stderr))
}

func newTerminal(stdout, stderr io.Writer, stdoutTTY, stderrTTY bool) *terminal {
	if stdoutTTY {
		return &terminal{out: stdout, err: stderr, outColor: true, errColor: stderrTTY}
	}
	return &terminal{out: stderr, err: stderr, jsonOut: stdout}
}

func isTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(l label, color bool) string {
	if !color {
		return string(l)
	}
	return labelColor[l] + string(l) + colorReset
}

func (t *terminal) OnStart(command string, eff config.EffectiveConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.err, "[%s] %s %s\n", time.Now().Format("15:04:05"), appName, command)
	if eff.Root == "" {
		return
	}
	fmt.Fprintln(t.err, "配置（生效）:")
	fmt.Fprintf(t.err, "  version: %s (%s)\n", eff.Version, eff.Release)
	fmt.Fprintf(t.err, "  assets: %s\n", eff.AssetsPath)
	if command == run.CommandCatalog {
		fmt.Fprintf(t.err, "  catalog: %s\n", eff.CatalogPath)
		fmt.Fprintf(t.err, "  api: %s\n", eff.APIURL)
		fmt.Fprintf(t.err, "  proxy: %s\n", formatProxy(eff.ProxyURL))
	}
	fmt.Fprintf(t.err, "  concurrency: %d\n\n", eff.Concurrency)
}

func (t *terminal) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch name {
	case "assets":
		fmt.Fprintf(t.err, "资产: assets=%d invalid=%d (%s)\n",
			intField(fields, "assets"), intField(fields, "invalid"), formatShortDuration(dur))
	case "fetch":
		fmt.Fprintf(t.err, "拉取: icons=%d count=%d (%s)\n",
			intField(fields, "icons"), intField(fields, "count"), formatShortDuration(dur))
	case "metadata":
		fmt.Fprintf(t.err, "元数据: icons=%d invalid=%d (%s)\n",
			intField(fields, "icons"), intField(fields, "invalid"), formatShortDuration(dur))
	case "write":
		fmt.Fprintf(t.err, "写入: icons=%d path=%v (%s)\n",
			intField(fields, "icons"), fields["path"], formatShortDuration(dur))
	default:
		fmt.Fprintf(t.err, "%s (%s)\n", name, formatShortDuration(dur))
	}
}

func (t *terminal) OnIconDone(idx, total int, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", paint(labelDone, t.outColor), name)
}

func (t *terminal) OnWritten(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "%s %s\n", paint(labelDone, t.outColor), path)
}

// emitReport 输出诊断、结果行与摘要；stdout 非终端时再输出一个 JSON。
func (t *terminal) emitReport(rr domain.Report) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, d := range rr.Diagnostics {
		l := labelFail
		if d.Severity == domain.SeverityWarn {
			l = labelWarn
		}
		fmt.Fprintf(t.err, "%s %s\n", paint(l, t.errColor), diagnosticLine(d))
	}

	if rr.ErrorCode != "" {
		fmt.Fprintf(t.err, "%s %s\n", paint(labelFail, t.errColor), rr.ErrorMsg)
	} else if line := doneLine(rr); line != "" {
		fmt.Fprintf(t.out, "%s %s\n", paint(labelDone, t.outColor), line)
	}

	fmt.Fprintf(t.out, "完成：failed=%d warned=%d assets=%d icons=%d written=%d\n",
		rr.Summary.Failed, rr.Summary.Warned, rr.Summary.Assets, rr.Summary.Icons, rr.Summary.Written,
	)

	if t.jsonOut != nil {
		_ = json.NewEncoder(t.jsonOut).Encode(rr)
	}
}

func diagnosticLine(d domain.Diagnostic) string {
	if d.Subject == "" {
		return d.Message
	}
	return d.Subject + " " + d.Message
}

func doneLine(rr domain.Report) string {
	switch rr.Command {
	case run.CommandCatalog:
		return fmt.Sprintf("%d icons ingested", rr.Summary.Written)
	case run.CommandVerify:
		return fmt.Sprintf("%d assets verified", rr.Summary.Assets)
	case run.CommandCollate:
		return fmt.Sprintf("%d files collated", rr.Summary.Written)
	default:
		return ""
	}
}

func formatProxy(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "off"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "on"
	}
	auth := "off"
	if u.User != nil {
		auth = "on"
	}
	return fmt.Sprintf("on (%s://%s, auth=%s)", u.Scheme, u.Host, auth)
}

func formatShortDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func intField(fields map[string]any, key string) int {
	if fields == nil {
		return 0
	}
	switch x := fields[key].(type) {
	case int:
		return x
	case int64:
		return int(x)
	default:
		return 0
	}
}
