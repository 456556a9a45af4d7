package checker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/depstore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/redo/internal/core/ports"
)

// NodeID is the unique identifier for the checker Graft node.
const NodeID graft.ID = "engine.checker"

func init() {
	graft.Register(graft.Node[*Checker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			depstore.StoreNodeID,
			fs.ResolverNodeID,
			fs.VerifierNodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Checker, error) {
			store, err := graft.Dep[ports.DependencyStore](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.RecipeResolver](ctx)
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

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, resolver, verifier, hasher, log), nil
		},
	})
}
