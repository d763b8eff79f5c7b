package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lal/internal/adapters/archive"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/adapters/artifact"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/adapters/sandbox"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lal/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WorkspaceNodeID,
			fs.VerifierNodeID,
			sandbox.NodeID,
			archive.NodeID,
			artifact.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			workspace, err := graft.Dep[ports.Workspace](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			sb, err := graft.Dep[ports.Sandbox](ctx)
			if err != nil {
				return nil, err
			}

			packager, err := graft.Dep[ports.Packager](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(workspace, verifier, sb, packager, store, tel, log), nil
		},
	})
}
