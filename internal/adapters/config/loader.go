// Package config loads mod lists and tool settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ModListLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ModListLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the mod list at path.
func (l *Loader) Load(path string) (*domain.ModList, error) {
	var doc modListDocument
	if err := readAndUnmarshalYAML(path, &doc); err != nil {
		return nil, err
	}

	if doc.Mods.Kind == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrModListInvalid, "missing Mods"), "path", path)
	}
	if doc.Version.Kind == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrModListInvalid, "missing Version"), "path", path)
	}

	versions, err := toConstraint(&doc.Version)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	list := &domain.ModList{
		Mods:    toNode(&doc.Mods),
		Version: versions,
	}

	if len(list.References()) == 0 {
		l.Logger.Warn(fmt.Sprintf("%s lists no mods", path))
	}

	return list, nil
}

func readAndUnmarshalYAML(path string, out any) error {
	//nolint:gosec // path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrModListNotFound, err.Error()), "path", path)
		}
		return zerr.With(zerr.Wrap(err, "failed to read mod list"), "path", path)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrModListInvalid, err.Error()), "path", path)
	}

	return nil
}

// toNode converts a YAML node tree into the domain's tagged value.
func toNode(n *yaml.Node) domain.Node {
	if n == nil {
		return domain.Node{}
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Node{}
		}
		return toNode(n.Content[0])
	case yaml.AliasNode:
		return toNode(n.Alias)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return domain.Node{}
		}
		return domain.Scalar(n.Value)
	case yaml.SequenceNode:
		items := make([]domain.Node, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, toNode(c))
		}
		return domain.List(items...)
	case yaml.MappingNode:
		entries := make([]domain.NodeEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			entries = append(entries, domain.NodeEntry{
				Key:   n.Content[i].Value,
				Value: toNode(n.Content[i+1]),
			})
		}
		return domain.Map(entries...)
	default:
		return domain.Node{}
	}
}

// toConstraint accepts a single label or a list of labels.
func toConstraint(n *yaml.Node) (domain.VersionConstraint, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return domain.VersionConstraint{}, nil
		}
		return domain.VersionConstraint{n.Value}, nil
	case yaml.SequenceNode:
		versions := make(domain.VersionConstraint, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, zerr.Wrap(domain.ErrModListInvalid, "Version entries must be plain labels")
			}
			versions = append(versions, c.Value)
		}
		return versions, nil
	default:
		return nil, zerr.Wrap(domain.ErrModListInvalid, "Version must be a label or a list of labels")
	}
}
