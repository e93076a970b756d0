package yamlscript

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	scriptsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{scriptsDir: "scripts"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithScriptsDir(dir string) Option {
	return func(l *Loader) { l.scriptsDir = dir }
}

var _ ports.ScriptLoader = (*Loader)(nil)

func (l *Loader) LoadScript(path string) (domain.Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Script{}, &domain.OpError{
			Op:   "yamlscript.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var ys yamlScript
	if err := yaml.Unmarshal(b, &ys); err != nil {
		return domain.Script{}, &domain.OpError{
			Op:   "yamlscript.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapAndValidate(path, ys)
}

func (l *Loader) ListScripts(root string) ([]domain.ScriptRef, error) {
	dir := filepath.Join(root, l.scriptsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlscript.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ScriptRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := readScriptName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.ScriptRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readScriptName(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return "", err
	}
	return v.Name, nil
}

type yamlScript struct {
	Name   string      `yaml:"name"`
	Events []yamlEvent `yaml:"events"`
}

type yamlEvent struct {
	Field string  `yaml:"field"`
	Value *string `yaml:"value"`
}

func mapAndValidate(path string, ys yamlScript) (domain.Script, error) {
	name := strings.TrimSpace(ys.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s := domain.Script{
		Name:   name,
		Events: make([]domain.InputEvent, 0, len(ys.Events)),
	}

	for i, e := range ys.Events {
		prefix := fmt.Sprintf("events[%d]", i)

		field, err := domain.ParseField(e.Field)
		if err != nil {
			return domain.Script{}, invalidField(path, prefix+".field", err.Error())
		}
		if e.Value == nil {
			return domain.Script{}, invalidField(path, prefix+".value", "value is required (use \"\" to clear a field)")
		}

		s.Events = append(s.Events, domain.InputEvent{Field: field, Value: *e.Value})
	}

	return s, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlscript.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
