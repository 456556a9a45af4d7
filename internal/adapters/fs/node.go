package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/redo/internal/adapters/config"
	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
)

const (
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
)

func init() {
	// Verifier Node (concrete implementation needed by Resolver)
	graft.Register(graft.Node[*Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Verifier, error) {
			return NewVerifier(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.RecipeResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{VerifierNodeID},
		Run: func(ctx context.Context) (ports.RecipeResolver, error) {
			verifier, err := graft.Dep[*Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(verifier), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(cfg.Signature), nil
		},
	})
}
