package domain

import (
	"fmt"
	"strings"
)

// Field identifies one of the two form inputs.
type Field string

const (
	FieldFib  Field = "fib"
	FieldName Field = "name"
)

// ParseField accepts the field names used in scripts and flags.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fib", "fibonacci":
		return FieldFib, nil
	case "name":
		return FieldName, nil
	default:
		return "", fmt.Errorf("unknown field %q (expected fib|name)", s)
	}
}

// InputEvent is a single change to one form field.
type InputEvent struct {
	Field Field
	Value string
}

// Script is an ordered list of input events replayed against a fresh form.
type Script struct {
	Name   string
	Events []InputEvent
}

// ScriptRef points to a script file inside a workspace.
type ScriptRef struct {
	Name string
	Path string
}
