package depstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/session"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the dependency store node.
	StoreNodeID graft.ID = "adapter.depstore.store"
	// SinkNodeID is the unique identifier for the record sink node.
	SinkNodeID graft.ID = "adapter.depstore.sink"
)

func init() {
	graft.Register(graft.Node[ports.DependencyStore]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{session.NodeID},
		Run: func(ctx context.Context) (ports.DependencyStore, error) {
			sess, err := graft.Dep[domain.Session](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(domain.RecordsRoot(sess.StateDir)), nil
		},
	})

	graft.Register(graft.Node[ports.RecordSink]{
		ID:        SinkNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecordSink, error) {
			return NewSink(), nil
		},
	})
}
