package selector

import (
	"testing"

	"github.com/aalvaropc/memoform/internal/domain"
)

const snapshotJSON = `{"step":4,"field":"fib","fib_input":"10","fib_display":"55","fib_valid":true,"name":"Ada","computations":2,"cache_hits":1}`

func TestApply_EmptyRules(t *testing.T) {
	vals, results := Apply([]byte(snapshotJSON), domain.SelectSpec{})
	if len(vals) != 0 {
		t.Fatalf("expected empty values, got %v", vals)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %v", results)
	}
}

func TestApply_Success(t *testing.T) {
	rules := domain.SelectSpec{
		"fib":   "$.fib_display",
		"who":   "$.name",
		"calls": "$.computations",
		"ok":    "$.fib_valid",
	}

	vals, res := Apply([]byte(snapshotJSON), rules)

	want := map[string]string{"fib": "55", "who": "Ada", "calls": "2", "ok": "true"}
	for k, w := range want {
		if vals[k] != w {
			t.Fatalf("expected %s=%q, got=%q", k, w, vals[k])
		}
	}

	if len(res) != 4 {
		t.Fatalf("expected 4 results, got=%d", len(res))
	}
	// Results are ordered by rule name.
	if res[0].Name != "calls" || res[3].Name != "who" {
		t.Fatalf("expected sorted results, got %+v", res)
	}
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected all success, got fail: %+v", r)
		}
	}
}

func TestApply_NonJSONDocument_FailsAll(t *testing.T) {
	vals, res := Apply([]byte("hello"), domain.SelectSpec{"fib": "$.fib_display"})
	if len(vals) != 0 {
		t.Fatalf("expected no values, got=%v", vals)
	}
	if len(res) != 1 || res[0].Success {
		t.Fatalf("expected one failure, got %+v", res)
	}
}

func TestApply_MissingKeyFails(t *testing.T) {
	vals, res := Apply([]byte(snapshotJSON), domain.SelectSpec{"x": "$.nope"})
	if _, ok := vals["x"]; ok {
		t.Fatalf("expected no value for missing key")
	}
	if len(res) != 1 || res[0].Success {
		t.Fatalf("expected failure, got %+v", res)
	}
}

func TestApply_EmptyStringIsSelected(t *testing.T) {
	vals, res := Apply([]byte(`{"fib_display":""}`), domain.SelectSpec{"fib": "$.fib_display"})
	if !res[0].Success {
		t.Fatalf("expected success for empty display, got %+v", res[0])
	}
	if v, ok := vals["fib"]; !ok || v != "" {
		t.Fatalf("expected empty string value, got %q (ok=%v)", v, ok)
	}
}

func TestApply_ArrayOfSnapshots(t *testing.T) {
	doc := []byte(`[{"fib_display":"13"},{"fib_display":"55"}]`)

	vals, res := Apply(doc, domain.SelectSpec{
		"last": "$[1].fib_display",
		"all":  "$[*].fib_display",
	})
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected success, got %+v", r)
		}
	}
	if vals["last"] != "55" {
		t.Fatalf("expected last=55, got %q", vals["last"])
	}
	if vals["all"] != `["13","55"]` {
		t.Fatalf("expected all=[13,55], got %q", vals["all"])
	}
}

func TestApply_EmptyExpression(t *testing.T) {
	_, res := Apply([]byte(snapshotJSON), domain.SelectSpec{"x": "  "})
	if res[0].Success {
		t.Fatalf("expected failure for empty expression")
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"fib=$.fib_display", " $.name ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules["fib"] != "$.fib_display" {
		t.Fatalf("expected fib rule, got %v", rules)
	}
	if rules["$.name"] != "$.name" {
		t.Fatalf("expected bare rule named after itself, got %v", rules)
	}

	if _, err := ParseRules([]string{"=$.x"}); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected KindInvalidInput, got %v", err)
	}
	if _, err := ParseRules([]string{"a=$.x", "a=$.y"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestParseRules_BareFilterExpressionKeepsEquals(t *testing.T) {
	expr := "$.snapshots[?(@.step==2)].fib_display"

	rules, err := ParseRules([]string{expr, "two=" + expr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %v", rules)
	}
	if rules[expr] != expr {
		t.Fatalf("expected bare filter named after itself, got %v", rules)
	}
	if rules["two"] != expr {
		t.Fatalf("expected named filter rule, got %v", rules)
	}

	doc := `{"snapshots":[{"step":1,"fib_display":"13"},{"step":2,"fib_display":"55"}]}`
	vals, res := Apply([]byte(doc), rules)
	for _, r := range res {
		if !r.Success {
			t.Fatalf("expected success, got %+v", r)
		}
	}
	if vals["two"] != "55" || vals[expr] != "55" {
		t.Fatalf("expected 55 from filter, got %v", vals)
	}
}
