// Package selector picks values out of a JSON document with JSONPath rules.
package selector

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/memoform/internal/domain"
)

// Apply evaluates every rule against doc.
// rules: map[outputName]jsonPathExpr
//
// - If doc is not JSON, every rule fails.
// - A failing rule is reported in its SelectResult; other rules still run.
func Apply(doc []byte, rules domain.SelectSpec) (map[string]string, []domain.SelectResult) {
	if len(rules) == 0 {
		return map[string]string{}, []domain.SelectResult{}
	}

	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v, err := parseJSON(doc)
	if err != nil {
		out := make([]domain.SelectResult, 0, len(keys))
		for _, name := range keys {
			out = append(out, domain.SelectResult{
				Name:    name,
				Success: false,
				Message: fmt.Sprintf("select %q (%s): document is not valid JSON", name, strings.TrimSpace(rules[name])),
			})
		}
		return map[string]string{}, out
	}

	selected := map[string]string{}
	results := make([]domain.SelectResult, 0, len(keys))

	for _, name := range keys {
		expr := strings.TrimSpace(rules[name])
		if expr == "" {
			results = append(results, domain.SelectResult{
				Name:    name,
				Message: fmt.Sprintf("select %q: empty jsonpath expression", name),
			})
			continue
		}

		val, getErr := jsonpath.Get(expr, v)
		if getErr != nil {
			results = append(results, domain.SelectResult{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): jsonpath error: %v", name, expr, getErr),
			})
			continue
		}

		if val == nil {
			results = append(results, domain.SelectResult{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): no value found", name, expr),
			})
			continue
		}

		s, convErr := toString(val)
		if convErr != nil {
			results = append(results, domain.SelectResult{
				Name:    name,
				Message: fmt.Sprintf("select %q (%s): cannot convert value to string: %v", name, expr, convErr),
			})
			continue
		}

		selected[name] = s
		results = append(results, domain.SelectResult{
			Name:    name,
			Success: true,
			Message: fmt.Sprintf("selected %q", name),
		})
	}

	return selected, results
}

// ParseRules turns "name=$.expr" arguments into a SelectSpec. A bare
// expression (starting with $) is named after itself, even when it
// contains '=' inside a filter.
func ParseRules(args []string) (domain.SelectSpec, error) {
	out := domain.SelectSpec{}
	for _, a := range args {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		name, expr, ok := strings.Cut(a, "=")
		if !ok || strings.HasPrefix(a, "$") {
			name, expr = a, a
		}
		name = strings.TrimSpace(name)
		expr = strings.TrimSpace(expr)
		if name == "" || expr == "" {
			return nil, &domain.OpError{
				Op:   "selector.parse",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("malformed select rule %q (expected name=$.path): %w", a, domain.ErrInvalidInput),
			}
		}
		if _, dup := out[name]; dup {
			return nil, &domain.OpError{
				Op:   "selector.parse",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("duplicate select name %q: %w", name, domain.ErrInvalidInput),
			}
		}
		out[name] = expr
	}
	return out, nil
}

func parseJSON(doc []byte) (any, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func toString(v any) (string, error) {
	// jsonpath wildcards return a slice; a single match is unwrapped
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return fmt.Sprint(t), nil
	case bool:
		return fmt.Sprint(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
