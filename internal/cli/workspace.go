package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/infra/workspacefinder"
	"github.com/aalvaropc/memoform/internal/infra/yamlscript"
	"github.com/aalvaropc/memoform/internal/ports"
)

type workspaceCtx struct {
	cwd  string
	root string // empty when no memoform.yaml was found
	cfg  domain.Config

	scripts ports.ScriptLoader
}

var newLocator = func() ports.WorkspaceLocator { return workspacefinder.NewFinder() }

// loadWorkspace resolves the effective config: an explicit --config path must
// load cleanly; otherwise memoform.yaml is searched upward from cwd and
// defaults apply when none exists.
func loadWorkspace(opts *rootOptions) (*workspaceCtx, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	wd, _ = filepath.Abs(wd)

	ws := &workspaceCtx{
		cwd:     wd,
		cfg:     domain.DefaultConfig(),
		scripts: yamlscript.NewLoader(),
	}

	if p := strings.TrimSpace(opts.configPath); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		cfg, err := workspacefinder.LoadConfigFile(abs)
		if err != nil {
			return nil, err
		}
		ws.cfg = cfg
		ws.root = filepath.Dir(abs)
		return ws, nil
	}

	root, err := newLocator().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return ws, nil
		}
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	ws.cfg = cfg
	ws.root = root
	return ws, nil
}

// resolveScriptPath accepts a path (relative paths resolve against the
// workspace root), a file name under <root>/scripts, or a script's name: field.
func resolveScriptPath(ws *workspaceCtx, nameOrPath string) (string, error) {
	s := strings.TrimSpace(nameOrPath)
	if s == "" {
		return "", fmt.Errorf("script is required")
	}

	if looksLikePath(s) {
		if filepath.IsAbs(s) || ws.root == "" {
			return filepath.Clean(s), nil
		}
		p := filepath.Join(ws.root, s)
		if !fileExists(p) && fileExists(s) {
			return filepath.Clean(s), nil
		}
		return p, nil
	}
	if ws.root == "" {
		if fileExists(s) {
			return s, nil
		}
		return "", fmt.Errorf("script %q not found (no workspace; pass a path)", s)
	}

	base := filepath.Join(ws.root, "scripts")
	candidates := []string{filepath.Join(base, s)}
	if !hasYAMLExt(s) {
		candidates = []string{
			filepath.Join(base, s+".yaml"),
			filepath.Join(base, s+".yml"),
		}
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c, nil
		}
	}

	// Last resort: match the name: field shown by `scripts list`.
	refs, err := ws.scripts.ListScripts(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, s) {
				return r.Path, nil
			}
		}
	}

	if fileExists(s) {
		return s, nil
	}
	return "", fmt.Errorf("script %q not found under %s", s, base)
}

func looksLikePath(s string) bool {
	return strings.ContainsRune(s, '/') || strings.ContainsRune(s, filepath.Separator)
}

func hasYAMLExt(s string) bool {
	low := strings.ToLower(s)
	return strings.HasSuffix(low, ".yaml") || strings.HasSuffix(low, ".yml")
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
