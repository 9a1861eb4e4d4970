package ports

import (
	"context"

	"go.trai.ch/modlock/internal/core/domain"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver turns a mod project reference into a concrete download URL.
type Resolver interface {
	// Matches reports whether ref is a project reference this resolver understands.
	// References that do not match are treated as direct download URLs.
	Matches(ref domain.ModReference) bool
	// Resolve returns the download URL of the newest file matching constraint.
	// It fails with domain.ErrVersionNotFound when no listed file matches.
	Resolve(ctx context.Context, ref domain.ModReference, constraint domain.VersionConstraint) (string, error)
}
