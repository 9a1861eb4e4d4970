package curseforge

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/adapters/httpclient"
	"go.trai.ch/modlock/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "adapter.curseforge"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			client, err := graft.Dep[*http.Client](ctx)
			if err != nil {
				return nil, err
			}
			return New(client), nil
		},
	})
}
