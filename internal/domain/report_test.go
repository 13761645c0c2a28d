package domain

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestReport_Finalize_SortAndSummaryAndUTC(t *testing.T) {
	r := Report{
		Command:    "catalog",
		StartedAt:  time.Date(2026, 2, 9, 10, 0, 0, 0, time.FixedZone("X", 8*3600)),
		FinishedAt: time.Date(2026, 2, 9, 10, 0, 1, 0, time.FixedZone("X", 8*3600)),
		Diagnostics: []Diagnostic{
			{Severity: SeverityWarn, Subject: "acorn", Code: CheckNonPathChildren},
			{Severity: SeverityFail, Subject: "zoom", Code: CheckBadViewBox},
			{Severity: SeverityFail, Subject: "acorn", Code: CheckNotCurrentColor},
			{Severity: SeverityFail, Subject: "acorn", Code: CheckBadViewBox},
			{Severity: SeverityFail, Subject: "", Code: CheckBadCount},
		},
	}

	r.Finalize()

	got := make([]string, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		got = append(got, d.Subject+"/"+d.Code)
	}
	want := []string{
		"/" + CheckBadCount,
		"acorn/" + CheckBadViewBox,
		"acorn/" + CheckNotCurrentColor,
		"acorn/" + CheckNonPathChildren,
		"zoom/" + CheckBadViewBox,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("diagnostics 排序不符合契约：%v", got)
		}
	}
	if r.Summary.Failed != 4 || r.Summary.Warned != 1 {
		t.Fatalf("summary 统计不正确：%+v", r.Summary)
	}
	if r.OK() {
		t.Fatalf("存在失败时 OK() 不应为 true")
	}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	if !bytes.Contains(b, []byte("\"started_at\":\"2026-02-09T02:00:00Z\"")) {
		t.Fatalf("started_at 不是 UTC RFC3339：%s", string(b))
	}
}

func TestReport_Finalize_NilDiagnosticsEncodeAsEmptyList(t *testing.T) {
	r := Report{Command: "verify"}
	r.Finalize()

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("json.Marshal 失败：%v", err)
	}
	if !bytes.Contains(b, []byte(`"diagnostics":[]`)) {
		t.Fatalf("期望 diagnostics 为 []，实际：%s", string(b))
	}
	if !r.OK() {
		t.Fatalf("空报告应视为通过")
	}
}
