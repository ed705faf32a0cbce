package core

import (
	"github.com/aretw0/introspection"
)

// RepositoryState is the common observability snapshot for repositories.
type RepositoryState struct {
	Backend string `json:"backend"`
	Path    string `json:"path,omitempty"`
	Records int    `json:"records"`
}

// ComponentTypeOf returns the introspection component type of v, or
// "unknown" if v does not expose one.
func ComponentTypeOf(v any) string {
	if comp, ok := v.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "unknown"
}

// StateOf returns the introspection state of v, or nil if v does not expose one.
func StateOf(v any) any {
	if in, ok := v.(introspection.Introspectable); ok {
		return in.State()
	}
	return nil
}
