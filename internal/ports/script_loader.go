package ports

import "github.com/aalvaropc/memoform/internal/domain"

// ScriptLoader loads replay scripts from a source (e.g., filesystem).
type ScriptLoader interface {
	LoadScript(path string) (domain.Script, error)
	ListScripts(root string) ([]domain.ScriptRef, error)
}
