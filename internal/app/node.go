package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/curseforge" //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/lockfile"   //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/store"      //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			lockfile.NodeID,
			store.NodeID,
			curseforge.NodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ModListLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}

			locks, err := graft.Dep[ports.LockfileRepository](ctx)
			if err != nil {
				return nil, err
			}

			contentStore, err := graft.Dep[ports.ContentStore](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, locks, contentStore, resolver, log, w, settings), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}
