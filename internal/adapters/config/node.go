package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/logger"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the mod list loader Graft node.
	NodeID graft.ID = "adapter.config.loader"
	// SettingsNodeID is the unique identifier for the settings Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ModListLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ModListLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*domain.Settings, error) {
			return LoadSettings(".")
		},
	})
}
