package ports

import "go.trai.ch/modlock/internal/core/domain"

//go:generate mockgen -source=modlist.go -destination=mocks/mock_modlist.go -package=mocks

// ModListLoader reads mod list documents.
type ModListLoader interface {
	// Load parses the mod list at path.
	Load(path string) (*domain.ModList, error)
}
