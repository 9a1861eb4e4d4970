package httpclient

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/config"
	"go.trai.ch/modlock/internal/core/domain"
)

// NodeID is the unique identifier for the HTTP client Graft node.
const NodeID graft.ID = "adapter.httpclient"

func init() {
	graft.Register(graft.Node[*http.Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (*http.Client, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings), nil
		},
	})
}
