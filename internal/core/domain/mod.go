package domain

import "slices"

// ModReference identifies a mod, usually by its project page or a direct download URL.
type ModReference string

// String returns the reference as a plain string.
func (m ModReference) String() string {
	return string(m)
}

// VersionConstraint is the set of acceptable game version labels.
type VersionConstraint []string

// Contains reports whether label is one of the acceptable versions.
func (c VersionConstraint) Contains(label string) bool {
	return slices.Contains(c, label)
}

// Unique returns refs without duplicates, keeping the first occurrence of each.
func Unique(refs []ModReference) []ModReference {
	seen := make(map[ModReference]struct{}, len(refs))
	out := make([]ModReference, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
