package store

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/config"
	"go.trai.ch/modlock/internal/adapters/httpclient"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/modlock/internal/core/ports"
)

// NodeID is the unique identifier for the content store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.ContentStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, httpclient.NodeID},
		Run: func(ctx context.Context) (ports.ContentStore, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			client, err := graft.Dep[*http.Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.DownloadDir, client)
		},
	})
}
