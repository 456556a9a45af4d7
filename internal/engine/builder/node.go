package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/depstore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/shell"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ResolverNodeID,
			depstore.StoreNodeID,
			depstore.SinkNodeID,
			fs.VerifierNodeID,
			fs.HasherNodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			resolver, err := graft.Dep[ports.RecipeResolver](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.DependencyStore](ctx)
			if err != nil {
				return nil, err
			}

			sink, err := graft.Dep[ports.RecordSink](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[*fs.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, store, sink, verifier, hasher, executor, log), nil
		},
	})
}
