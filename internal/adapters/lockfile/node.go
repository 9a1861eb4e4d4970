package lockfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/modlock/internal/core/ports"
)

// NodeID is the unique identifier for the lock file repository Graft node.
const NodeID graft.ID = "adapter.lockfile"

func init() {
	graft.Register(graft.Node[ports.LockfileRepository]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileRepository, error) {
			return New(), nil
		},
	})
}
