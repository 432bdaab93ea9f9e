package core

import "github.com/aretw0/introspection"

// RepositoryType returns the component type of repo, or "repository" when it
// does not describe itself.
func RepositoryType(repo Repository) string {
	if repo == nil {
		return "none"
	}
	if comp, ok := repo.(introspection.Component); ok {
		return comp.ComponentType()
	}
	return "repository"
}
